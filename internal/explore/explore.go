// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package explore parses inline navigation directives out of assistant
// replies. The backend embeds a marker of the form **explore:id** in
// message text to suggest a portfolio panel worth opening next; the marker
// is stripped from the displayed text and, when the id names a known panel,
// surfaced as a call-to-action the user can activate.
package explore

import (
	"regexp"
	"strings"
)

// directivePattern matches the literal wire format **explore:IDENTIFIER**.
var directivePattern = regexp.MustCompile(`\*\*explore:(\w+)\*\*`)

// PanelLabels maps known navigation targets to their display labels.
// Identifiers outside this set strip from the text but render no control.
var PanelLabels = map[string]string{
	"whoami":   "personal story",
	"resume":   "work experience",
	"skills":   "technical skills",
	"projects": "project showcase",
	"contact":  "get in touch",
}

// Parse extracts the first directive identifier from content.
// Returns the identifier and true, or "" and false when no directive is
// present. The identifier is returned even when it is not a known panel;
// callers must check Known before rendering a control.
func Parse(content string) (string, bool) {
	m := directivePattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Known reports whether id names a renderable panel.
func Known(id string) bool {
	_, ok := PanelLabels[id]
	return ok
}

// Label returns the display label for a known panel id, or the id itself.
func Label(id string) string {
	if label, ok := PanelLabels[id]; ok {
		return label
	}
	return id
}

// Strip removes every directive-shaped substring from content and trims
// surrounding whitespace. Unknown identifiers are stripped too; a directive
// never reaches the display text regardless of validity.
func Strip(content string) string {
	return strings.TrimSpace(directivePattern.ReplaceAllString(content, ""))
}

// Action is the result of scanning one assistant message.
type Action struct {
	PanelID string // Known panel id, empty when no renderable control
	Label   string // Display label for the call-to-action
}

// Scan combines Parse and Known: it returns a renderable Action and true
// only when the first directive names a known panel.
func Scan(content string) (Action, bool) {
	id, ok := Parse(content)
	if !ok || !Known(id) {
		return Action{}, false
	}
	return Action{PanelID: id, Label: Label(id)}, true
}
