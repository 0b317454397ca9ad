// Package cart owns the authoritative list of cart lines for a session.
// Every mutation is re-serialized to the session store immediately, so a
// reload restores the last-known state.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/repository/session"
)

type sessionRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type productCatalog interface {
	Get(id string) (*domain.Product, error)
}

type Service struct {
	repo     sessionRepo
	products productCatalog
	logger   *log.Logger
	now      func() time.Time
}

func New(repo session.Repository, products productCatalog, logger *log.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// Get loads the cart for a session. An absent cart is an empty cart; a
// corrupt stored cart is discarded and logged, never surfaced to the caller.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := session.CartKey(sessionID)
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{}, nil
		}
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		if s.logger != nil {
			s.logger.Printf("discarding corrupt cart for session %s: %v", sessionID, err)
		}
		_ = s.repo.Delete(ctx, key)
		return &domain.Cart{}, nil
	}
	return &cart, nil
}

// AddItem adds quantity of a product to the cart. A line matching the same
// (product, size, color) triple is incremented instead of duplicated; an
// empty size or color means none was chosen. Stock is not consulted.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int, size, color string) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.products.Get(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i, line := range cart.Lines {
		if line.ProductID == product.ID && line.Size == size && line.Color == color {
			cart.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:        s.lineID(product.ID, size, color),
			ProductID: product.ID,
			Product:   *product,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
		})
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the line with the given identifier. Removing an absent
// line is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity replaces a line's quantity. A quantity of zero or below
// removes the line entirely; a line never exists with quantity < 1.
func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, lineID)
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i, line := range cart.Lines {
		if line.ID == lineID {
			cart.Lines[i].Quantity = quantity
			break
		}
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, session.CartKey(sessionID), data)
}

// lineID derives a stable-enough line identifier the same way the storefront
// always has: product, chosen size, chosen color, creation time.
func (s *Service) lineID(productID, size, color string) string {
	return fmt.Sprintf("%s-%s-%s-%d", productID, orDefault(size), orDefault(color), s.now().UnixNano())
}

func orDefault(v string) string {
	if v == "" {
		return "default"
	}
	return v
}
