package journal_test

import (
	"context"
	"testing"
	"time"

	"grasp/internal/journal"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entries := []journal.Entry{
		{SessionID: "s1", Command: "SET_JOINTS 0.000000", Response: "OK", OK: true, Latency: 3 * time.Millisecond},
		{SessionID: "s1", Command: "SET_JOINTS 1.000000", Response: "ERROR", OK: false, Latency: 5 * time.Millisecond},
		{SessionID: "s1", Command: "QUIT", Response: "", OK: true},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Command != "QUIT" {
		t.Fatalf("expected newest first, got %q", records[0].Command)
	}
	if records[1].Command != "SET_JOINTS 1.000000" || records[1].OK {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if records[1].Latency != 5*time.Millisecond {
		t.Fatalf("unexpected latency: %v", records[1].Latency)
	}
	if records[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to round-trip")
	}
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *journal.Store
	if err := store.Record(context.Background(), journal.Entry{Command: "QUIT"}); err != nil {
		t.Fatalf("nil Record: %v", err)
	}
	records, err := store.Recent(context.Background(), 10)
	if err != nil || records != nil {
		t.Fatalf("nil Recent: records=%v err=%v", records, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
	if store.Path() != "" {
		t.Fatalf("nil Path: %q", store.Path())
	}
}

func TestOpenIsReentrant(t *testing.T) {
	dir := t.TempDir()
	first, err := journal.Open(dir)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Record(context.Background(), journal.Entry{SessionID: "s1", Command: "QUIT", OK: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := journal.Open(dir)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()
	records, err := second.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected persisted record, got %d", len(records))
	}
}
