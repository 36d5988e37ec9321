package task

import (
	"context"
	"fmt"
	"time"

	"github.com/thenoetrevino/todo/internal/models"
)

// Stats summarises the active tasks and the trash
func (s *service) Stats(ctx context.Context) (*models.TaskStats, error) {
	batches, err := s.fetch(ctx, models.FilterActive, models.FilterDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return calculateStats(batches[0], len(batches[1]), s.now()), nil
}

func calculateStats(active []*models.Task, deleted int, now time.Time) *models.TaskStats {
	stats := &models.TaskStats{
		Total:   len(active),
		Deleted: deleted,
	}

	for _, task := range active {
		if task.IsCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = stats.Completed * 100 / stats.Total
	}

	stats.LastSevenDays = createdPerDay(active, now, models.StatsWindowDays)
	return stats
}

// createdPerDay counts tasks created on each of the last days calendar days
// in now's location, oldest first, today last.
func createdPerDay(tasks []*models.Task, now time.Time, days int) []models.DayCount {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	counts := make([]models.DayCount, days)
	index := make(map[string]int, days)
	for i := range days {
		day := today.AddDate(0, 0, i-days+1)
		counts[i] = models.DayCount{Day: day}
		index[day.Format(time.DateOnly)] = i
	}

	for _, task := range tasks {
		key := task.CreatedAt.In(loc).Format(time.DateOnly)
		if i, ok := index[key]; ok {
			counts[i].Count++
		}
	}
	return counts
}
