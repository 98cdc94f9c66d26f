// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the twin TUI.

All colors are Lip Gloss AdaptiveColor values, so one palette serves both
dark and light terminals. The palette follows the web client: indigo
primary, violet accent and navy surfaces.

# Color System (colors.go)

	Primary, Accent     - brand halves, active panel, bubbles
	Emerald, Rose, Amber - success, error, stale/warning
	Surface*, Overlay*  - layered backgrounds and borders
	Text*               - text hierarchy

StatusIndicators pair every color with an ASCII marker ([OK], [X], [!])
so status stays readable without color.

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme) // "auto", "dark" or "light"
	out := theme.Card.Render(body)
	r, _ := glamour.NewTermRenderer(glamour.WithStandardStyle(theme.GlamourStyle()))

A forced mode calls lipgloss.SetHasDarkBackground so AdaptiveColor picks
the matching side even when detection would disagree.

# Animation System (animations.go)

SpinnerConfig frame sets convert to bubbles spinners with Bubble().
RenderProgressBar draws the analytics bars.
*/
package styles
