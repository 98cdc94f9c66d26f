// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command is a slash command understood by the chat input and the REPL.
// Execution belongs to the caller; the registry only describes commands.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/upload <path>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	Name        string
	Required    bool
	Type        ArgType
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeFile                  // File path
	ArgTypeEnum                  // One of predefined values
)

// Built-in command names.
const (
	Help   = "/help"
	Upload = "/upload"
	Clear  = "/clear"
	Export = "/export"
	Quit   = "/quit"
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias. Lookup is case-insensitive.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns the visible commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// HelpText renders one line per visible command.
func (r *Registry) HelpText() string {
	var b strings.Builder
	for _, cmd := range r.All() {
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		b.WriteString("- `" + usage + "` " + cmd.Description + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        Help,
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
	})

	r.Register(&Command{
		Name:        Upload,
		Aliases:     []string{"/u"},
		Description: "Upload a document or media file to the knowledge base",
		Usage:       "/upload <path>",
		Args: []ArgDef{
			{Name: "path", Required: true, Type: ArgTypeFile, Description: "file to upload"},
		},
	})

	r.Register(&Command{
		Name:        Clear,
		Aliases:     []string{"/c"},
		Description: "Clear the knowledge base and the conversation",
	})

	r.Register(&Command{
		Name:        Export,
		Aliases:     []string{"/e"},
		Description: "Export the conversation to a file",
		Usage:       "/export [markdown|json] [path]",
		Args: []ArgDef{
			{Name: "format", Type: ArgTypeEnum, Values: []string{"markdown", "md", "json"}, Description: "export format"},
			{Name: "path", Type: ArgTypeFile, Description: "output file"},
		},
	})

	r.Register(&Command{
		Name:        Quit,
		Aliases:     []string{"/q", "/exit"},
		Description: "Quit",
	})
}
