package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
)

// ============================================================================
// Test Helpers
// ============================================================================

// createTestCommand creates a mock cobra.Command with specified flags
func createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
	return cmd
}

// ============================================================================
// ParseTaskID Tests
// ============================================================================

func TestParseTaskID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    int64
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid task ID",
			args: []string{"42"},
			want: 42,
		},
		{
			name: "valid task ID = 1",
			args: []string{"1"},
			want: 1,
		},
		{
			name:    "missing argument",
			args:    nil,
			wantErr: true,
			errMsg:  "is required",
		},
		{
			name:    "zero task ID",
			args:    []string{"0"},
			wantErr: true,
			errMsg:  "positive integer",
		},
		{
			name:    "negative task ID",
			args:    []string{"-3"},
			wantErr: true,
			errMsg:  "positive integer",
		},
		{
			name:    "not a number",
			args:    []string{"abc"},
			wantErr: true,
			errMsg:  "positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parser := NewFlagParser(createTestCommand())

			result, err := parser.ParseTaskID(tt.args)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing '%s', got '%s'", tt.errMsg, err.Error())
				}
				var usageErr *cli.UsageError
				if !errors.As(err, &usageErr) {
					t.Errorf("expected a usage error, got %T", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != tt.want {
				t.Errorf("expected %d, got %d", tt.want, result)
			}
		})
	}
}

// ============================================================================
// ParseString Tests
// ============================================================================

func TestParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagValue string
		wantValue string
		wantErr   bool
	}{
		{name: "valid string", flagValue: "test-value", wantValue: "test-value"},
		{name: "string with whitespace trimmed", flagValue: "  trimmed  ", wantValue: "trimmed"},
		{name: "empty string", flagValue: "", wantErr: true},
		{name: "whitespace only string", flagValue: "   ", wantErr: true},
		{name: "string with newlines trimmed", flagValue: "\nvalue\n", wantValue: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().String("name", "", "name flag")
			_ = cmd.Flags().Set("name", tt.flagValue)

			result, err := NewFlagParser(cmd).ParseString("name")

			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "is required") {
					t.Errorf("expected 'is required' error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != tt.wantValue {
				t.Errorf("expected '%s', got '%s'", tt.wantValue, result)
			}
		})
	}
}

// ============================================================================
// ParseStringOptional Tests
// ============================================================================

func TestParseStringOptional(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("title", "", "title flag")
	cmd.Flags().String("description", "", "description flag")
	_ = cmd.Flags().Set("description", "")

	parser := NewFlagParser(cmd)

	value, changed, err := parser.ParseStringOptional("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" || changed {
		t.Errorf("expected unset title, got %q changed=%v", value, changed)
	}

	value, changed, err = parser.ParseStringOptional("description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" || !changed {
		t.Errorf("expected explicitly cleared description, got %q changed=%v", value, changed)
	}

	if _, _, err := parser.ParseStringOptional("missing"); err == nil {
		t.Error("expected error for undefined flag")
	}
}

// ============================================================================
// OutputFormats Tests
// ============================================================================

func TestOutputFormats(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().Bool("json", false, "json")
	cmd.Flags().Bool("quiet", false, "quiet")
	_ = cmd.Flags().Set("json", "true")

	parser := NewFlagParser(cmd)

	jsonOutput, quietMode, err := parser.OutputFormats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !jsonOutput || quietMode {
		t.Errorf("expected json=true quiet=false, got json=%v quiet=%v", jsonOutput, quietMode)
	}

	formatter := parser.Formatter()
	if !formatter.JSON || formatter.Quiet {
		t.Errorf("unexpected formatter %+v", formatter)
	}
}

func TestOutputFormats_MissingFlags(t *testing.T) {
	t.Parallel()

	if _, _, err := NewFlagParser(createTestCommand()).OutputFormats(); err == nil {
		t.Error("expected error when output flags are not defined")
	}
}

// ============================================================================
// ParseBool Tests
// ============================================================================

func TestParseBool(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().Bool("force", false, "")
	if err := cmd.Flags().Set("force", "true"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	parser := NewFlagParser(cmd)

	got, err := parser.ParseBool("force")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected force to be true")
	}

	_, err = parser.ParseBool("all")
	if err == nil {
		t.Fatal("expected error for an undefined flag")
	}
	if !strings.Contains(err.Error(), "all flag") {
		t.Errorf("error %q should name the flag", err)
	}
}
