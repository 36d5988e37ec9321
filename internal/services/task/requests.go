package task

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/todo/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=10000"`
	DueDate     *time.Time
	Completed   bool
}

// Validate normalises whitespace and checks the field rules.
func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	return translate(validate.Struct(r))
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID       int64   `validate:"gt=0"`
	Title        *string `validate:"omitnil,max=255"`
	Description  *string `validate:"omitnil,max=10000"`
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// Validate normalises whitespace and checks the field rules.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		r.Title = &title
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		r.Description = &description
	}
	if r.DueDate != nil && r.ClearDueDate {
		return ErrConflictingDueDates
	}
	return translate(validate.Struct(r))
}

// apply copies the requested changes onto task.
func (r *UpdateTaskRequest) apply(task *models.Task) {
	if r.Title != nil {
		task.Title = *r.Title
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.DueDate != nil {
		due := *r.DueDate
		task.DueDate = &due
	}
	if r.ClearDueDate {
		task.DueDate = nil
	}
	if r.Completed != nil {
		task.IsCompleted = *r.Completed
	}
}

// translate maps the first validator failure onto the package's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "TaskID":
		return ErrInvalidTaskID
	case "Title":
		if fe.Tag() == "max" {
			return ErrTitleTooLong
		}
		return ErrEmptyTitle
	case "Description":
		return ErrDescriptionTooLong
	}
	return err
}
