// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash commands shared by the chat input
// and the line-mode REPL.
//
// The registry describes commands and parses input; executing them is left
// to the caller, which switches on Command.Name.
//
// # Key Types
//
//   - Registry: the built-in commands and the parser
//   - ParseResult: parsed command with name and arguments
//   - Completer: tab completion for commands, formats and file paths
//
// # Built-in Commands
//
//   - /help: show available commands
//   - /upload <path>: upload a file
//   - /clear: clear the knowledge base
//   - /export [markdown|json] [path]: export the conversation
//   - /quit: leave the REPL
//
// # Usage
//
//	reg := commands.NewRegistry()
//	res := reg.Parse("/upload report.pdf")
//	if res.IsCommand && res.Error == nil {
//	    switch res.Command.Name {
//	    case commands.Upload:
//	        // res.Args[0] == "report.pdf"
//	    }
//	}
package commands
