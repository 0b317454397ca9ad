// Package checkout drives the three-stage wizard that turns a cart into an
// order: shipping details, payment details, confirmation. The flow is
// forward-moving with a single backward edge so the shopper can edit
// shipping data; it lives in memory for the duration of the checkout session
// and is never persisted.
package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/payment"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateAwaitingShipping State = "awaiting_shipping"
	StateAwaitingPayment  State = "awaiting_payment"
	StateConfirmed        State = "confirmed"
)

// ErrInvalidTransition is returned when a submission does not match the
// flow's current state.
var ErrInvalidTransition = errors.New("invalid checkout transition")

var taxRate = decimal.RequireFromString("0.1")

type cartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (*domain.Cart, error)
}

type userLookup interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// Flow is the per-session wizard state.
type Flow struct {
	State    State          `json:"state"`
	Shipping *ShippingInput `json:"shipping,omitempty"`
	OrderID  string         `json:"orderId,omitempty"`
}

type Service struct {
	carts     cartService
	users     userLookup
	processor payment.Processor
	validate  *validator.Validate
	logger    *log.Logger
	now       func() time.Time

	mu     sync.Mutex
	flows  map[string]*Flow
	orders []domain.Order
}

// New builds the checkout service. users may be nil; orders placed by an
// anonymous session simply carry no user ID.
func New(carts cartService, users userLookup, processor payment.Processor, logger *log.Logger) *Service {
	return &Service{
		carts:     carts,
		users:     users,
		processor: processor,
		validate:  newValidator(),
		logger:    logger,
		now:       time.Now,
		flows:     make(map[string]*Flow),
	}
}

// Start enters checkout for a session. An empty cart refuses to start and
// returns domain.ErrEmptyCart; that is a guard, not a wizard state. Starting
// an already-running flow returns it unchanged.
func (s *Service) Start(ctx context.Context, sessionID string) (*Flow, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[sessionID]; ok && flow.State != StateConfirmed {
		return flow.clone(), nil
	}
	flow := &Flow{State: StateAwaitingShipping}
	s.flows[sessionID] = flow
	return flow.clone(), nil
}

// Current returns the session's flow, or domain.ErrNotFound if checkout was
// never started.
func (s *Service) Current(_ context.Context, sessionID string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return flow.clone(), nil
}

// SubmitShipping validates the shipping form and advances the flow to the
// payment step. On validation failure the flow does not move and the
// returned error carries field-level messages.
func (s *Service) SubmitShipping(ctx context.Context, sessionID string, in ShippingInput) (*Flow, error) {
	s.mu.Lock()
	flow, ok := s.flows[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if flow.State != StateAwaitingShipping {
		return nil, ErrInvalidTransition
	}

	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	flow.Shipping = &in
	flow.State = StateAwaitingPayment
	return flow.clone(), nil
}

// Back returns from the payment step to the shipping step so the shopper can
// edit the address. No other backward transition exists.
func (s *Service) Back(_ context.Context, sessionID string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if flow.State != StateAwaitingPayment {
		return nil, ErrInvalidTransition
	}
	flow.State = StateAwaitingShipping
	return flow.clone(), nil
}

// SubmitPayment validates the payment form and charges the processor for the
// order total. The cart is cleared only after the processor confirms; a
// declined charge leaves the flow in the payment step with the cart intact.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, in PaymentInput) (*domain.Order, error) {
	s.mu.Lock()
	flow, ok := s.flows[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if flow.State != StateAwaitingPayment {
		return nil, ErrInvalidTransition
	}

	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	totals := computeTotals(cart, flow.Shipping.ShippingMethod)
	card := payment.Card{
		HolderName: in.CardholderName,
		Number:     strings.ReplaceAll(in.CardNumber, " ", ""),
		Expiry:     in.ExpiryDate,
		CVV:        in.CVV,
	}
	receipt, err := s.processor.Charge(ctx, card, totals.Total)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentDeclined) && s.logger != nil {
			s.logger.Printf("payment declined for session %s", sessionID)
		}
		return nil, err
	}

	order := s.buildOrder(ctx, sessionID, cart, flow, totals)
	if s.logger != nil {
		s.logger.Printf("order %s confirmed, receipt %s, total %s", order.ID, receipt.ID, totals.Total)
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil && s.logger != nil {
		// The charge went through; an unclearable cart must not undo that.
		s.logger.Printf("clearing cart for session %s: %v", sessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	flow.State = StateConfirmed
	flow.OrderID = order.ID
	s.orders = append(s.orders, order)
	return &order, nil
}

// Totals derives the amounts shown at every step: subtotal from the cart,
// the selected method's shipping cost (zero before one is chosen), 10% tax
// on the subtotal. Recomputed on every call, never stored.
func (s *Service) Totals(ctx context.Context, sessionID string) (domain.OrderTotals, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.OrderTotals{}, err
	}

	method := ""
	s.mu.Lock()
	if flow, ok := s.flows[sessionID]; ok && flow.Shipping != nil {
		method = flow.Shipping.ShippingMethod
	}
	s.mu.Unlock()

	return computeTotals(cart, method), nil
}

// Orders lists confirmed orders, newest last.
func (s *Service) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Service) buildOrder(ctx context.Context, sessionID string, cart *domain.Cart, flow *Flow, totals domain.OrderTotals) domain.Order {
	userID := ""
	if s.users != nil {
		if user, err := s.users.CurrentUser(ctx, sessionID); err == nil && user != nil {
			userID = user.ID
		}
	}

	now := s.now()
	items := make([]domain.CartLine, len(cart.Lines))
	copy(items, cart.Lines)
	return domain.Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Items:     items,
		Status:    domain.OrderPending,
		Totals:    totals,
		ShippingAddress: domain.Address{
			Street:     flow.Shipping.Address,
			City:       flow.Shipping.City,
			State:      flow.Shipping.State,
			PostalCode: flow.Shipping.PostalCode,
			Country:    flow.Shipping.Country,
		},
		ShippingMethod: flow.Shipping.ShippingMethod,
		PaymentStatus:  domain.PaymentPaid,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func computeTotals(cart *domain.Cart, method string) domain.OrderTotals {
	subtotal := cart.Subtotal()
	shipping := decimal.Zero
	if method != "" {
		shipping = methodPrice(method)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return domain.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

func (f *Flow) clone() *Flow {
	out := *f
	if f.Shipping != nil {
		shipping := *f.Shipping
		out.Shipping = &shipping
	}
	return &out
}
