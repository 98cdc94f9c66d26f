// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the twin command line.
//
// Running twin with no subcommand starts the full-screen interface. The
// line-mode subcommands drive the same session controller and API client:
//
//	twin                      Start the TUI
//	twin ask <question>       One question, no history
//	twin chat                 Interactive REPL with slash commands
//	twin upload <path>...     Upload files and print the summaries
//	twin clear                Clear the knowledge base
//	twin dashboard [--once]   Stats, files and recent history
//	twin files [--json]       List indexed documents
//	twin config show|get|set|path
//	twin mock-backend         Serve a fake backend on :8000
//	twin version
//
// Global flags: --config <path>, --api-url <url>, --debug.
//
// Configuration is resolved in this order, later wins: defaults, the
// config file, a .env file in the working directory, TWIN_* environment
// variables, then flags.
package cli
