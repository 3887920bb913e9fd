// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/folio-tui/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "logs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleLog(id, session string, ts time.Time) api.DetailedChatLog {
	return api.DetailedChatLog{
		ID:            id,
		SessionID:     session,
		UserQuery:     "what are blake's skills?",
		FinalResponse: "plenty",
		ToolsUsed:     []api.ToolResult{},
		Timestamp:     ts,
		ResponseTime:  0.42,
	}
}

func TestSaveAndCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	saved, err := store.Save(ctx, []api.DetailedChatLog{
		sampleLog("log-1", "session-a", now),
		sampleLog("log-2", "session-a", now.Add(time.Minute)),
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry := sampleLog("log-1", "session-a", time.Now().UTC())
	if _, err := store.Save(ctx, []api.DetailedChatLog{entry}); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	entry.FinalResponse = "updated"
	if _, err := store.Save(ctx, []api.DetailedChatLog{entry}); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("count = %d, want 1 after re-archiving the same id", count)
	}

	logs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if logs[0].FinalResponse != "updated" {
		t.Errorf("response = %q, want the replaced value", logs[0].FinalResponse)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	_, err := store.Save(ctx, []api.DetailedChatLog{
		sampleLog("old", "s", base.Add(-time.Hour)),
		sampleLog("new", "s", base),
		sampleLog("mid", "s", base.Add(-30*time.Minute)),
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	logs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("len = %d, want 2", len(logs))
	}
	if logs[0].ID != "new" || logs[1].ID != "mid" {
		t.Errorf("order = [%s %s], want [new mid]", logs[0].ID, logs[1].ID)
	}
}

func TestOptionalFieldsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	withExtras := sampleLog("extras", "s", time.Now().UTC())
	withExtras.ModalActions = []api.ModalAction{{Action: api.ActionOpenModal, ModalID: "skills"}}
	withExtras.Suggestions = []string{"ask more"}

	bare := sampleLog("bare", "s", time.Now().UTC().Add(-time.Minute))

	if _, err := store.Save(ctx, []api.DetailedChatLog{withExtras, bare}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	logs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}

	byID := map[string]api.DetailedChatLog{}
	for _, l := range logs {
		byID[l.ID] = l
	}

	got := byID["extras"]
	if len(got.ModalActions) != 1 || got.ModalActions[0].ModalID != "skills" {
		t.Errorf("modal actions = %v, want the archived action", got.ModalActions)
	}
	if len(got.Suggestions) != 1 {
		t.Errorf("suggestions = %v, want one entry", got.Suggestions)
	}

	plain := byID["bare"]
	if plain.ModalActions != nil {
		t.Error("absent modal actions should stay nil")
	}
	if plain.ToolsUsed == nil {
		t.Error("tools should decode to an empty slice, never nil")
	}
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	store := openTestStore(t)
	store.Close()

	if _, err := store.Count(context.Background()); err != ErrClosed {
		t.Errorf("Count() error = %v, want ErrClosed", err)
	}
	if _, err := store.Save(context.Background(), []api.DetailedChatLog{sampleLog("x", "s", time.Now())}); err != ErrClosed {
		t.Errorf("Save() error = %v, want ErrClosed", err)
	}
}
