// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Keys

## Selector

| Key | Action |
|-----|--------|
| any character | narrow the filter |
| backspace | erase filter text |
| ctrl+u | clear the filter |
| ↑ / ctrl+p | move up |
| ↓ / ctrl+n | move down |
| tab | select / deselect |
| enter | confirm (current package when nothing selected) |
| ctrl+o | flip list/preview layout |
| esc / ctrl+c | cancel, nothing happens |
| f1 | this screen |

Official packages install through **sudo pacman**; AUR packages go
through **yay**, which asks for elevation itself.

Press any key to close.
`

// renderHelp renders the key reference once. Glamour failures fall
// back to the raw markdown, which is still readable.
func renderHelp() string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return rendered
}
