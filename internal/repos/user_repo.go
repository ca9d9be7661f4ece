package repos

import (
	"errors"
	"sync"

	"storefront/internal/domain"
)

var (
	ErrDuplicate = errors.New("record already exists")
	ErrNoRecord  = errors.New("record not found")
)

// UserRepo holds customer accounts keyed by email.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.Customer
}

func NewUserRepo() *UserRepo { return &UserRepo{users: map[string]domain.Customer{}} }

// Create stores c unless the email is already registered.
func (r *UserRepo) Create(c domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[c.Email]; ok {
		return ErrDuplicate
	}
	r.users[c.Email] = c
	return nil
}

func (r *UserRepo) ByEmail(email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.users[email]
	if !ok {
		return domain.Customer{}, ErrNoRecord
	}
	return c, nil
}

func (r *UserRepo) UpdateName(email, name string) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.users[email]
	if !ok {
		return domain.Customer{}, ErrNoRecord
	}
	c.Name = name
	r.users[email] = c
	return c, nil
}
