// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknown is returned for a slash command that is not registered.
var ErrUnknown = errors.New("unknown command")

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name (e.g., "/help")
	CommandName string

	// Args are the parsed arguments
	Args []string

	// RawArgs is the unparsed arguments portion
	RawArgs string

	// Error is ErrUnknown or a *ValidationError
	Error error
}

// Parse splits input into a command and its arguments. Plain text returns
// IsCommand=false.
func (r *Registry) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return ParseResult{}
	}

	result := ParseResult{IsCommand: true}
	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return result
	}

	result.CommandName = parts[0]
	result.Args = parts[1:]
	if end := strings.IndexFunc(input, unicode.IsSpace); end >= 0 {
		result.RawArgs = strings.TrimSpace(input[end:])
	}

	result.Command = r.Get(result.CommandName)
	if result.Command == nil {
		result.Error = fmt.Errorf("%w: %s", ErrUnknown, result.CommandName)
		return result
	}
	result.Error = ValidateArgs(result.Command, result.Args)
	return result
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens, respecting quotes so
// paths with spaces survive.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingle, inDouble, started bool

	flush := func() {
		if started {
			tokens = append(tokens, current.String())
			current.Reset()
			started = false
		}
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case c == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case c == '\\' && i+1 < len(runes) && (inDouble || inSingle):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(c)
			}
		case unicode.IsSpace(c) && !inSingle && !inDouble:
			flush()
		default:
			current.WriteRune(c)
			started = true
		}
	}
	flush()
	return tokens
}

// IsCommand reports whether the input looks like a slash command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// ValidateArgs checks required arguments and enum values.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil {
		return nil
	}
	for i, def := range cmd.Args {
		if def.Required && i >= len(args) {
			return &ValidationError{
				Command:  cmd.Name,
				Arg:      def.Name,
				Message:  "required argument missing",
				Expected: def.Description,
			}
		}
		if i < len(args) && def.Type == ArgTypeEnum && len(def.Values) > 0 && !containsFold(def.Values, args[i]) {
			// An optional leading enum may be skipped, e.g. "/export out.md".
			if !def.Required && i+1 < len(cmd.Args) {
				continue
			}
			return &ValidationError{
				Command:  cmd.Name,
				Arg:      def.Name,
				Message:  "invalid value",
				Got:      args[i],
				Expected: strings.Join(def.Values, ", "),
			}
		}
	}
	return nil
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents an argument validation error.
type ValidationError struct {
	Command  string
	Arg      string
	Message  string
	Got      string
	Expected string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Arg != "" {
		msg += " for argument '" + e.Arg + "'"
	}
	if e.Got != "" {
		msg += " (got: " + e.Got + ")"
	}
	if e.Expected != "" {
		msg += " - expected: " + e.Expected
	}
	return msg
}

// =============================================================================
// EXPORT ARGUMENTS
// =============================================================================

// ExportArgs splits "/export" arguments into a format and an optional path.
// A single argument that is not a format is taken as the path and the
// format is guessed from its extension.
func ExportArgs(args []string) (format, path string) {
	format = "markdown"
	switch len(args) {
	case 0:
		return format, ""
	case 1:
		if isFormat(args[0]) {
			return normalizeFormat(args[0]), ""
		}
		path = args[0]
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			format = "json"
		}
		return format, path
	default:
		return normalizeFormat(args[0]), args[1]
	}
}

func isFormat(s string) bool {
	return containsFold([]string{"markdown", "md", "json"}, s)
}

func normalizeFormat(s string) string {
	if strings.EqualFold(s, "json") {
		return "json"
	}
	return "markdown"
}
