package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type OrderService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo

	now   func() time.Time
	newID func() string
}

func NewOrderService(prods *repos.ProductRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{
		Prods:  prods,
		Orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Quote prices a cart against the current catalog. Every line must reference
// a known, visible product with a positive quantity.
func (s *OrderService) Quote(items []domain.OrderItem) (int64, error) {
	if len(items) == 0 {
		return 0, kindErr(ErrInvalidCart, "Cart is empty")
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	catalog := s.Prods.Lookup(ids)

	var total int64
	for _, it := range items {
		p, ok := catalog[it.ProductID]
		if !ok {
			return 0, kindErr(ErrInvalidCart, "Invalid product in cart")
		}
		if !p.Visible {
			return 0, kindErr(ErrInvalidCart, "Product not available")
		}
		if it.Quantity < 1 {
			return 0, kindErr(ErrInvalidCart, "Quantity must be at least 1")
		}
		line, ok := mulCents(p.EffectivePriceCents(), int64(it.Quantity))
		if !ok || total > math.MaxInt64-line {
			return 0, kindErr(ErrInvalidCart, "Order total too large")
		}
		total += line
	}
	return total, nil
}

// Create prices the cart and stores a pending order. Nothing is stored when
// any line is rejected.
func (s *OrderService) Create(in domain.OrderInput) (domain.Order, error) {
	total, err := s.Quote(in.Items)
	if err != nil {
		return domain.Order{}, err
	}
	items := make([]domain.OrderItem, len(in.Items))
	copy(items, in.Items)

	o := domain.Order{
		ID:             s.newID(),
		Items:          items,
		TotalCents:     total,
		Status:         domain.OrderPending,
		CreatedAt:      s.now(),
		DownloadTokens: []string{},
	}
	s.Orders.Create(o)
	return o, nil
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	o, ok := s.Orders.Get(id)
	if !ok {
		return domain.Order{}, kindErr(ErrNotFound, "Order not found")
	}
	return o, nil
}

// mulCents multiplies a non-negative price by a quantity, reporting overflow.
func mulCents(price, qty int64) (int64, bool) {
	if price < 0 || qty < 0 {
		return 0, false
	}
	if qty != 0 && price > math.MaxInt64/qty {
		return 0, false
	}
	return price * qty, true
}
