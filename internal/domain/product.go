package domain

import "time"

// ProductCategory classifies virtual products in the shop.
type ProductCategory string

const (
	CategoryRoles     ProductCategory = "roles"
	CategoryPerks     ProductCategory = "perks"
	CategoryItems     ProductCategory = "items"
	CategoryCosmetics ProductCategory = "cosmetics"
	CategoryBoosters  ProductCategory = "boosters"
	CategoryOther     ProductCategory = "other"
)

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryRoles, CategoryPerks, CategoryItems, CategoryCosmetics, CategoryBoosters, CategoryOther:
		return true
	}
	return false
}

// VirtualProduct is a shop catalog entry priced in GameCoins.
type VirtualProduct struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          int64           `json:"price"`
	Description    string          `json:"description"`
	Category       ProductCategory `json:"category"`
	RoleID         string          `json:"role_id,omitempty"`
	DurationDays   int             `json:"duration_days,omitempty"`
	Multiplier     float64         `json:"multiplier,omitempty"`
	Enabled        bool            `json:"enabled"`
	PurchasesCount int64           `json:"purchases_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// Permanent reports whether an entitlement to this product never expires.
func (p *VirtualProduct) Permanent() bool {
	return p.DurationDays == 0
}

// Purchase is an entitlement record. Name and price are snapshots taken at
// purchase time so later catalog edits never rewrite history.
type Purchase struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	PricePaid   int64      `json:"price_paid"`
	PurchasedAt time.Time  `json:"purchased_at"`
	Active      bool       `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the entitlement has lapsed at the given instant.
// Permanent purchases never expire.
func (p *Purchase) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}
