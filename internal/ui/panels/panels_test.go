// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"strings"
	"testing"

	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

func TestAllPanelsMatchNavigationTargets(t *testing.T) {
	panels := All()
	if len(panels) != len(explore.PanelLabels) {
		t.Fatalf("panel count = %d, want %d", len(panels), len(explore.PanelLabels))
	}
	for _, p := range panels {
		label, ok := explore.PanelLabels[p.ID]
		if !ok {
			t.Errorf("panel %q has no navigation target", p.ID)
			continue
		}
		if p.Title != label {
			t.Errorf("panel %q title = %q, want %q", p.ID, p.Title, label)
		}
		if strings.TrimSpace(p.Markdown) == "" {
			t.Errorf("panel %q has no content", p.ID)
		}
	}
}

func TestByID(t *testing.T) {
	p, ok := ByID("skills")
	if !ok || p.ID != "skills" {
		t.Fatalf("ByID(skills) = %+v, %v", p, ok)
	}
	if _, ok := ByID("blog"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestShowSwitchesPanelAndIgnoresUnknown(t *testing.T) {
	m := New(styles.New(0, true), 80)
	m.SetSize(100, 30)

	m.Show("projects")
	if m.Current() != "projects" {
		t.Errorf("current = %q, want projects", m.Current())
	}

	m.Show("nope")
	if m.Current() != "projects" {
		t.Error("unknown id must leave the current panel up")
	}
}

func TestViewContainsPanelTitle(t *testing.T) {
	m := New(styles.New(0, true), 80)
	m.SetSize(100, 30)
	m.Show("contact")

	if !strings.Contains(m.View(), "get in touch") {
		t.Error("view should include the panel title")
	}
}
