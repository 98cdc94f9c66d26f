// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package layout decides the responsive column split of the TUI.

Below the breakpoint (100 columns by default) the layout is compact: the
sidebar is collapsed and the right activity panel is hidden. Every resize
re-derives the flags from the width alone.

# Key Types

  - Controller: size and sidebar state, safe for concurrent use
  - Layout: the computed widths for one frame

# Usage

	lc := layout.New(cfg.UI.MobileBreakpoint, cfg.UI.ShowRightPanel)
	lc.Resize(msg.Width, msg.Height)
	l := lc.Compute()
*/
package layout
