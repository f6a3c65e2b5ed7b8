package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

func TestDocumentStore_AddAndList(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)
	ctx := context.Background()

	err := store.Add(ctx, "default",
		domain.Document{Name: "A.pdf", Text: "textA", Size: 100},
		domain.Document{Name: "B.pdf", Text: "textB", Size: 200},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := store.List(ctx, "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Name != "A.pdf" || docs[0].Text != "textA" || docs[0].Size != 100 {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[1].Name != "B.pdf" {
		t.Errorf("unexpected second document: %+v", docs[1])
	}
}

func TestDocumentStore_CapacityEnforced(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)
	ctx := context.Background()

	for i := 0; i < domain.MaxDocuments; i++ {
		if err := store.Add(ctx, "default", domain.Document{Name: fmt.Sprintf("doc%d.pdf", i), Text: "t"}); err != nil {
			t.Fatalf("unexpected error on add %d: %v", i, err)
		}
	}

	before, _ := store.List(ctx, "default")

	err := store.Add(ctx, "default", domain.Document{Name: "extra.pdf", Text: "t"})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	after, _ := store.List(ctx, "default")
	if len(after) != len(before) {
		t.Errorf("rejected add must not change the store: %d vs %d docs", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("document %d changed after rejected add", i)
		}
	}
}

func TestDocumentStore_BatchAddOverCapacityRejectedWhole(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)
	ctx := context.Background()

	_ = store.Add(ctx, "default",
		domain.Document{Name: "1.pdf"}, domain.Document{Name: "2.pdf"},
		domain.Document{Name: "3.pdf"}, domain.Document{Name: "4.pdf"},
	)

	err := store.Add(ctx, "default", domain.Document{Name: "5.pdf"}, domain.Document{Name: "6.pdf"})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	count, _ := store.Count(ctx, "default")
	if count != 4 {
		t.Errorf("expected count 4 after rejected batch, got %d", count)
	}
}

func TestDocumentStore_RemoveByIndex(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)
	ctx := context.Background()

	_ = store.Add(ctx, "default",
		domain.Document{Name: "A.pdf"},
		domain.Document{Name: "B.pdf"},
		domain.Document{Name: "C.pdf"},
	)

	if err := store.Remove(ctx, "default", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, _ := store.List(ctx, "default")
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Name != "A.pdf" || docs[1].Name != "C.pdf" {
		t.Errorf("unexpected documents after removal: %+v", docs)
	}

	// Out-of-bounds removal is a bounds-checked no-op.
	if err := store.Remove(ctx, "default", 10); err != nil {
		t.Errorf("out-of-bounds removal must be a no-op, got %v", err)
	}
	if err := store.Remove(ctx, "default", -1); err != nil {
		t.Errorf("negative index removal must be a no-op, got %v", err)
	}
	docs, _ = store.List(ctx, "default")
	if len(docs) != 2 {
		t.Errorf("no-op removal changed the store: %d documents", len(docs))
	}
}

func TestDocumentStore_ClearRemovesKey(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)
	ctx := context.Background()

	_ = store.Add(ctx, "default", domain.Document{Name: "A.pdf"})
	if !mr.Exists("chat:documents:default") {
		t.Fatal("expected documents key to exist")
	}

	if err := store.Clear(ctx, "default"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists("chat:documents:default") {
		t.Error("expected documents key to be removed")
	}
}

func TestDocumentStore_CorruptStateTreatedAsEmpty(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewDocumentStore(client, nil)

	if err := mr.Set("chat:documents:default", "[broken"); err != nil {
		t.Fatalf("failed to seed corrupt state: %v", err)
	}

	docs, err := store.List(context.Background(), "default")
	if err != nil {
		t.Fatalf("corrupt state must not surface as an error, got: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty set for corrupt state, got %d documents", len(docs))
	}
}
