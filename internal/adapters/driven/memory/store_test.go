package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

func TestConversationStore_AppendAndList(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	if err := store.Append(ctx, "s1", domain.UserTurn("Hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Append(ctx, "s1", domain.AssistantTurn("Hi!")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turns, _ := store.List(ctx, "s1")
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "Hello" || turns[1].Text != "Hi!" {
		t.Errorf("unexpected turns: %+v", turns)
	}

	// List returns a copy; mutating it must not affect the store.
	turns[0].Text = "mutated"
	fresh, _ := store.List(ctx, "s1")
	if fresh[0].Text != "Hello" {
		t.Error("List leaked internal state")
	}
}

func TestConversationStore_RejectsUnknownRole(t *testing.T) {
	store := NewConversationStore()

	err := store.Append(context.Background(), "s1", domain.Turn{Role: "tool", Text: "x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConversationStore_Clear(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	_ = store.Append(ctx, "s1", domain.UserTurn("Hello"))
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turns, _ := store.List(ctx, "s1")
	if len(turns) != 0 {
		t.Errorf("expected empty conversation after clear, got %d turns", len(turns))
	}
}

func TestDocumentStore_Capacity(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	for i := 0; i < domain.MaxDocuments; i++ {
		if err := store.Add(ctx, "s1", domain.Document{Name: fmt.Sprintf("doc%d.pdf", i)}); err != nil {
			t.Fatalf("unexpected error on add %d: %v", i, err)
		}
	}

	err := store.Add(ctx, "s1", domain.Document{Name: "extra.pdf"})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	count, _ := store.Count(ctx, "s1")
	if count != domain.MaxDocuments {
		t.Errorf("expected count %d, got %d", domain.MaxDocuments, count)
	}

	// A different session is unaffected by the full one.
	if err := store.Add(ctx, "s2", domain.Document{Name: "other.pdf"}); err != nil {
		t.Errorf("unexpected error for independent session: %v", err)
	}
}

func TestDocumentStore_RemoveBounds(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	_ = store.Add(ctx, "s1", domain.Document{Name: "A.pdf"}, domain.Document{Name: "B.pdf"})

	if err := store.Remove(ctx, "s1", 5); err != nil {
		t.Errorf("out-of-bounds removal must be a no-op, got %v", err)
	}
	if err := store.Remove(ctx, "s1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, _ := store.List(ctx, "s1")
	if len(docs) != 1 || docs[0].Name != "B.pdf" {
		t.Errorf("unexpected documents after removal: %+v", docs)
	}
}
