package cart

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/repository/session"

	"github.com/shopspring/decimal"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func (s *stubCatalog) Get(id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func newTestService() (*Service, session.Repository) {
	repo := session.NewMemory()
	catalog := &stubCatalog{products: map[string]domain.Product{
		"1": {ID: "1", Name: "Classic White T-Shirt", Price: decimal.RequireFromString("29.99"), InStock: true},
		"2": {ID: "2", Name: "Slim Fit Jeans", Price: decimal.RequireFromString("59.99"), InStock: true},
	}}
	svc := New(repo, catalog, log.New(io.Discard, "", 0))
	// distinct timestamps per call so generated line IDs never collide
	var tick int64
	svc.now = func() time.Time {
		tick++
		return time.Unix(0, tick)
	}
	return svc, repo
}

func TestAddItemMergesSameTriple(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "1", 1, "S", "White"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(ctx, "s1", "1", 2, "S", "White")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddItemDistinctSizesProduceDistinctLines(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "1", 1, "S", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(ctx, "s1", "1", 1, "M", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines for distinct sizes, got %d", len(cart.Lines))
	}
	if cart.Lines[0].ID == cart.Lines[1].ID {
		t.Fatalf("expected distinct line IDs")
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.AddItem(context.Background(), "s1", "missing", 1, "", ""); err == nil {
		t.Fatalf("expected error for unknown product")
	}
}

func TestAddItemClampsQuantityToOne(t *testing.T) {
	svc, _ := newTestService()
	cart, err := svc.AddItem(context.Background(), "s1", "1", 0, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", cart.Lines[0].Quantity)
	}
}

func TestUpdateItemQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -3} {
		svc, _ := newTestService()
		ctx := context.Background()
		cart, err := svc.AddItem(ctx, "s1", "1", 2, "S", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lineID := cart.Lines[0].ID

		cart, err = svc.UpdateItemQuantity(ctx, "s1", lineID, qty)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Lines) != 0 {
			t.Fatalf("quantity %d: expected line removed, got %d lines", qty, len(cart.Lines))
		}
	}
}

func TestUpdateItemQuantityReplaces(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cart, err := svc.AddItem(ctx, "s1", "1", 2, "S", "White")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lineID := cart.Lines[0].ID

	cart, err = svc.UpdateItemQuantity(ctx, "s1", lineID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := cart.Lines[0]
	if line.Quantity != 5 || line.Size != "S" || line.Color != "White" || line.ProductID != "1" {
		t.Fatalf("unexpected line after update: %+v", line)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", 1, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.RemoveItem(ctx, "s1", "no-such-line")
	if err != nil {
		t.Fatalf("expected no error removing absent line, got %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected cart unchanged, got %d lines", len(cart.Lines))
	}
}

func TestSubtotalAndCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", 2, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(ctx, "s1", "2", 1, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := decimal.RequireFromString("119.97")
	if !cart.Subtotal().Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, cart.Subtotal())
	}
	if cart.Count() != 3 {
		t.Fatalf("expected count 3, got %d", cart.Count())
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", 4, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.Clear(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Count() != 0 || !cart.Subtotal().IsZero() {
		t.Fatalf("expected empty cart, got count=%d subtotal=%s", cart.Count(), cart.Subtotal())
	}

	reloaded, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reloaded.IsEmpty() {
		t.Fatalf("expected cleared cart to persist empty")
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	added, err := svc.AddItem(ctx, "s1", "1", 2, "M", "Black")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a second service over the same store sees the identical cart
	other := New(repo, &stubCatalog{}, log.New(io.Discard, "", 0))
	loaded, err := other.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Lines) != 1 {
		t.Fatalf("expected 1 line after reload, got %d", len(loaded.Lines))
	}
	got, want := loaded.Lines[0], added.Lines[0]
	if got.ID != want.ID || got.Quantity != want.Quantity || got.Size != want.Size || got.Color != want.Color {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
	if !got.Product.Price.Equal(want.Product.Price) {
		t.Fatalf("product price lost in round trip")
	}

	// repeated load with no mutation stays equal
	again, err := other.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again.Lines) != 1 || again.Lines[0].ID != got.ID {
		t.Fatalf("load is not idempotent")
	}
}

func TestCorruptStoredCartStartsEmpty(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if err := repo.Set(ctx, session.CartKey("s1"), []byte("{not json")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("corrupt state must not surface an error, got %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart after discarding corrupt state")
	}
	if _, err := repo.Get(ctx, session.CartKey("s1")); err == nil {
		t.Fatalf("expected corrupt value to be removed from the store")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	cart, err := svc.AddItem(ctx, "s1", "1", 1, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Get(ctx, session.CartKey("s1")); err != nil {
		t.Fatalf("expected cart persisted after add: %v", err)
	}

	if _, err := svc.UpdateItemQuantity(ctx, "s1", cart.Lines[0].ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Lines[0].Quantity != 7 {
		t.Fatalf("expected persisted quantity 7, got %d", loaded.Lines[0].Quantity)
	}
}
