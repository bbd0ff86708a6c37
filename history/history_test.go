package history

import (
	"context"
	"testing"
)

func TestAppendAndRecentOrdering(t *testing.T) {
	h, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	if err := h.Append(ctx, "first command", 0); err != nil {
		t.Fatal(err)
	}
	if err := h.Append(ctx, "second command", 1); err != nil {
		t.Fatal(err)
	}

	entries, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Line != "second command" || entries[0].ExitCode != 1 {
		t.Fatalf("most recent entry = %#v", entries[0])
	}
	if entries[1].Line != "first command" {
		t.Fatalf("second entry = %#v", entries[1])
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	h, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := h.Append(ctx, "cmd", 0); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestRecentOnEmptyHistoryReturnsNone(t *testing.T) {
	h, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	entries, err := h.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
