package profiles

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// NoCurrentOrder is the CurrentOrder value of a profile with no active order.
const NoCurrentOrder = "няма"

// Profile is one loyalty member.
type Profile struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Points        int          `json:"points"`
	TotalOrders   int          `json:"totalOrders"`
	CurrentOrder  string       `json:"currentOrder"`
	OrderHistory  OrderHistory `json:"orderHistory"`
	CreatedAt     time.Time    `json:"createdAt"`
	LastOrderDate time.Time    `json:"lastOrderDate"`
}

// Validate reports ErrInvalidProfile for an empty username or negative counters.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("%w: username is empty", ErrInvalidProfile)
	}
	if p.Points < 0 {
		return fmt.Errorf("%w: negative points", ErrInvalidProfile)
	}
	if p.TotalOrders < 0 {
		return fmt.Errorf("%w: negative order count", ErrInvalidProfile)
	}
	return nil
}

// HasCurrentOrder reports whether CurrentOrder holds a real order.
func (p Profile) HasCurrentOrder() bool {
	return p.CurrentOrder != "" && p.CurrentOrder != NoCurrentOrder
}

func (p Profile) clone() Profile {
	p.OrderHistory = slices.Clone(p.OrderHistory)
	return p
}

func cloneAll(list []Profile) []Profile {
	out := make([]Profile, len(list))
	for i, p := range list {
		out[i] = p.clone()
	}
	return out
}
