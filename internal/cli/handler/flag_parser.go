// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseTaskID extracts the task ID from the first positional argument
func (p *FlagParser) ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, &cli.UsageError{Err: fmt.Errorf("task ID is required")}
	}
	return cli.ParseTaskID(args[0])
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &cli.UsageError{Err: fmt.Errorf("%s is required", flagName)}
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag and reports whether
// it was set on the command line
func (p *FlagParser) ParseStringOptional(flagName string) (string, bool, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return value, p.cmd.Flags().Changed(flagName), nil
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	value, err := p.cmd.Flags().GetBool(flagName)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}

// Formatter builds the output formatter selected by --json and --quiet
func (p *FlagParser) Formatter() *cli.OutputFormatter {
	jsonOutput, quietMode, _ := p.OutputFormats()
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
