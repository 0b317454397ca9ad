package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/payment"

	"github.com/shopspring/decimal"
)

type stubCarts struct {
	cart    domain.Cart
	cleared bool
}

func (s *stubCarts) Get(_ context.Context, _ string) (*domain.Cart, error) {
	cart := s.cart
	cart.Lines = append([]domain.CartLine(nil), s.cart.Lines...)
	return &cart, nil
}

func (s *stubCarts) Clear(_ context.Context, _ string) (*domain.Cart, error) {
	s.cart = domain.Cart{}
	s.cleared = true
	return &domain.Cart{}, nil
}

func cartWithSubtotal(price string, qty int) domain.Cart {
	return domain.Cart{Lines: []domain.CartLine{{
		ID:        "1-default-default-1",
		ProductID: "1",
		Product:   domain.Product{ID: "1", Name: "Classic White T-Shirt", Price: decimal.RequireFromString(price)},
		Quantity:  qty,
	}}}
}

func newTestCheckout(carts *stubCarts) *Service {
	return New(carts, nil, payment.NewSimulator(0), log.New(io.Discard, "", 0))
}

func TestStartRefusesEmptyCart(t *testing.T) {
	svc := newTestCheckout(&stubCarts{})
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	// the guard is not a wizard state: no flow exists afterwards
	if _, err := svc.Current(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no flow after guard, got %v", err)
	}
}

func TestStartEntersShippingStep(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)

	flow, err := svc.Start(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingShipping {
		t.Fatalf("expected awaiting_shipping, got %s", flow.State)
	}
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitShipping(ctx, "s1", validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flow, err := svc.Start(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingPayment {
		t.Fatalf("restart must not reset a running flow, got %s", flow.State)
	}
}

func TestSubmitShippingAdvances(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flow, err := svc.SubmitShipping(ctx, "s1", validShipping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", flow.State)
	}
	if flow.Shipping == nil || flow.Shipping.ShippingMethod != MethodExpress {
		t.Fatalf("expected stored shipping selection, got %+v", flow.Shipping)
	}
}

func TestSubmitShippingInvalidKeepsState(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := validShipping()
	in.Email = "not-an-email"
	_, err := svc.SubmitShipping(ctx, "s1", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	flow, err := svc.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingShipping || flow.Shipping != nil {
		t.Fatalf("failed validation must not mutate the flow, got %+v", flow)
	}
}

func TestBackFromPayment(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// backward from the shipping step does not exist
	if _, err := svc.Back(ctx, "s1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.SubmitShipping(ctx, "s1", validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flow, err := svc.Back(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingShipping {
		t.Fatalf("expected awaiting_shipping after back, got %s", flow.State)
	}
}

func TestSubmitPaymentOutOfOrder(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("29.99", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.SubmitPayment(ctx, "s1", validPayment()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before start, got %v", err)
	}

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitPayment(ctx, "s1", validPayment()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition in shipping step, got %v", err)
	}
}

func TestSubmitPaymentConfirmsAndClearsCart(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("50.00", 2)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitShipping(ctx, "s1", validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := svc.SubmitPayment(ctx, "s1", validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.PaymentStatus != domain.PaymentPaid || order.Status != domain.OrderPending {
		t.Fatalf("unexpected order statuses: %+v", order)
	}
	// subtotal 100.00, express 9.99, tax 10.00
	if want := decimal.RequireFromString("119.99"); !order.Totals.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.Totals.Total)
	}
	if !carts.cleared {
		t.Fatalf("cart must be cleared after a confirmed charge")
	}

	flow, err := svc.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateConfirmed || flow.OrderID != order.ID {
		t.Fatalf("unexpected flow after confirmation: %+v", flow)
	}
	if got := svc.Orders(); len(got) != 1 || got[0].ID != order.ID {
		t.Fatalf("expected order recorded, got %+v", got)
	}
}

func TestSubmitPaymentDeclinedKeepsCart(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("50.00", 2)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitShipping(ctx, "s1", validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validPayment()
	in.CardNumber = "4242 4242 4242 0000"
	_, err := svc.SubmitPayment(ctx, "s1", in)
	if !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
	if carts.cleared {
		t.Fatalf("declined charge must not clear the cart")
	}

	flow, err := svc.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State != StateAwaitingPayment {
		t.Fatalf("declined charge must stay in payment step, got %s", flow.State)
	}
}

func TestTotalsBeforeMethodChosen(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("100.00", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	totals, err := svc.Totals(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Shipping.IsZero() {
		t.Fatalf("expected zero shipping before a method is chosen, got %s", totals.Shipping)
	}
	if want := decimal.RequireFromString("10"); !totals.Tax.Equal(want) {
		t.Fatalf("expected tax %s, got %s", want, totals.Tax)
	}
	if want := decimal.RequireFromString("110"); !totals.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, totals.Total)
	}
}

func TestTotalsWithExpressShipping(t *testing.T) {
	carts := &stubCarts{cart: cartWithSubtotal("100.00", 1)}
	svc := newTestCheckout(carts)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitShipping(ctx, "s1", validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals, err := svc.Totals(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("9.99"); !totals.Shipping.Equal(want) {
		t.Fatalf("expected shipping %s, got %s", want, totals.Shipping)
	}
	if want := decimal.RequireFromString("119.99"); !totals.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, totals.Total)
	}
}
