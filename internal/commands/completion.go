// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completion is one candidate.
type Completion struct {
	// Value replaces the partial token
	Value string

	// Display is shown in lists (may differ from Value)
	Display string

	Description string
	Score       int
}

// Completer handles tab completion for commands and arguments.
type Completer struct {
	registry *Registry

	// FilesFn lists paths starting with prefix. Defaults to a directory
	// read relative to the working directory.
	FilesFn func(prefix string) []string
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidates for the last token of input.
func (c *Completer) Complete(input string) []Completion {
	if !strings.HasPrefix(strings.TrimLeft(input, " "), "/") {
		return nil
	}

	parts := splitCommandLine(input)
	trailing := strings.HasSuffix(input, " ")
	if len(parts) == 0 {
		return c.completeCommands("")
	}
	if len(parts) == 1 && !trailing {
		return c.completeCommands(parts[0])
	}

	cmd := c.registry.Get(parts[0])
	if cmd == nil {
		return nil
	}
	argIndex := len(parts) - 2
	partial := parts[len(parts)-1]
	if trailing {
		argIndex++
		partial = ""
	}
	return c.completeArg(cmd, parts[1:min(argIndex+1, len(parts))], argIndex, partial)
}

// CompleteLine returns whole-line candidates, the form liner expects.
func (c *Completer) CompleteLine(line string) []string {
	completions := c.Complete(line)
	if len(completions) == 0 {
		return nil
	}

	prefix := line
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		prefix = line[:i+1]
	} else {
		prefix = ""
	}

	out := make([]string, 0, len(completions))
	for _, comp := range completions {
		out = append(out, prefix+comp.Value)
	}
	return out
}

// =============================================================================
// COMMAND COMPLETION
// =============================================================================

func (c *Completer) completeCommands(partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, cmd := range c.registry.All() {
		if strings.HasPrefix(cmd.Name, partial) {
			completions = append(completions, Completion{
				Value:       cmd.Name,
				Display:     cmd.Name,
				Description: cmd.Description,
				Score:       calculateScore(cmd.Name, partial),
			})
		}
	}
	sortCompletions(completions)
	return completions
}

// =============================================================================
// ARGUMENT COMPLETION
// =============================================================================

func (c *Completer) completeArg(cmd *Command, prior []string, argIndex int, partial string) []Completion {
	if argIndex < 0 || argIndex >= len(cmd.Args) {
		return nil
	}
	arg := cmd.Args[argIndex]

	// "/export out.md" skipped the format, so the second slot is unused.
	if argIndex > 0 && cmd.Args[0].Type == ArgTypeEnum && len(prior) > 0 && !containsFold(cmd.Args[0].Values, prior[0]) {
		return nil
	}

	switch arg.Type {
	case ArgTypeFile:
		return c.completeFiles(partial)
	case ArgTypeEnum:
		comps := c.completeFromList(arg.Values, partial)
		if !arg.Required && argIndex+1 < len(cmd.Args) && cmd.Args[argIndex+1].Type == ArgTypeFile && partial != "" {
			comps = append(comps, c.completeFiles(partial)...)
		}
		return comps
	default:
		return nil
	}
}

func (c *Completer) completeFiles(partial string) []Completion {
	var paths []string
	if c.FilesFn != nil {
		paths = c.FilesFn(partial)
	} else {
		paths = defaultFiles(partial)
	}

	completions := make([]Completion, 0, len(paths))
	for _, p := range paths {
		completions = append(completions, Completion{
			Value:   p,
			Display: filepath.Base(p),
			Score:   calculateScore(p, partial),
		})
	}
	sortCompletions(completions)
	return completions
}

// defaultFiles lists entries of partial's directory whose names start with
// its base. Directories get a trailing separator. Hidden files are only
// listed when the base starts with a dot.
func defaultFiles(partial string) []string {
	dir, base := filepath.Split(partial)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	if strings.HasPrefix(readDir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			readDir = filepath.Join(home, readDir[1:])
		}
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(base)) {
			continue
		}
		p := dir + name
		if e.IsDir() {
			p += string(filepath.Separator)
		}
		out = append(out, p)
		if len(out) >= 50 {
			break
		}
	}
	return out
}

func (c *Completer) completeFromList(values []string, partial string) []Completion {
	var completions []Completion
	lower := strings.ToLower(partial)
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), lower) {
			completions = append(completions, Completion{
				Value:   v,
				Display: v,
				Score:   calculateScore(v, partial),
			})
		}
	}
	sortCompletions(completions)
	return completions
}

// =============================================================================
// SCORING
// =============================================================================

// calculateScore favours exact and short matches.
func calculateScore(value, partial string) int {
	score := 100
	if strings.EqualFold(value, partial) {
		score += 50
	}
	score -= len(value) / 2
	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
