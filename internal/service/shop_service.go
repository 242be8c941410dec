package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductDisabled = errors.New("product disabled")
	ErrShopDisabled    = errors.New("shop disabled")
	ErrAlreadyOwned    = errors.New("already owned")
	ErrInvalidProduct  = errors.New("invalid product")
)

// ShortfallError is an insufficient-funds rejection carrying how many coins
// are missing, so callers can render a useful message.
type ShortfallError struct {
	Price   int64 `json:"price"`
	Balance int64 `json:"balance"`
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d more coins", e.Shortfall())
}

func (e *ShortfallError) Unwrap() error { return ErrInsufficientFunds }

// Shortfall is how many coins the buyer is missing.
func (e *ShortfallError) Shortfall() int64 { return e.Price - e.Balance }

// ShopService manages the virtual product catalog and the entitlements
// bought from it. All coin movement goes through the ledger.
type ShopService struct {
	eco *EconomyService
}

// NewShopService creates the shop over the shared ledger.
func NewShopService(eco *EconomyService) *ShopService {
	return &ShopService{eco: eco}
}

// NewProduct is the owner-supplied shape of a catalog entry.
type NewProduct struct {
	Name         string                 `json:"name"`
	Price        int64                  `json:"price"`
	Description  string                 `json:"description"`
	Category     domain.ProductCategory `json:"category"`
	RoleID       string                 `json:"role_id"`
	DurationDays int                    `json:"duration_days"`
	Multiplier   float64                `json:"multiplier"`
}

// inferCategory picks a category from the product's payload when the owner
// did not name one.
func inferCategory(in NewProduct) domain.ProductCategory {
	switch {
	case in.Category != "":
		return in.Category
	case in.RoleID != "":
		return domain.CategoryRoles
	case in.Multiplier > 0:
		return domain.CategoryBoosters
	default:
		return domain.CategoryOther
	}
}

// AddProduct creates a catalog entry and returns its fresh id.
func (s *ShopService) AddProduct(ctx context.Context, in NewProduct) (*domain.VirtualProduct, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidProduct)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if in.DurationDays < 0 {
		return nil, fmt.Errorf("%w: duration_days must not be negative", ErrInvalidProduct)
	}
	category := inferCategory(in)
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, category)
	}

	p := &domain.VirtualProduct{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		Category:     category,
		RoleID:       in.RoleID,
		DurationDays: in.DurationDays,
		Multiplier:   in.Multiplier,
		Enabled:      true,
		CreatedAt:    s.eco.now(),
	}
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		doc.VirtualShop.Products[p.ID] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("product added", "product", p.ID, "name", p.Name, "price", p.Price, "category", p.Category)
	return p, nil
}

// ProductUpdate is a partial edit. Nil fields are left untouched; anything
// outside this shape is ignored by the JSON decoder, not rejected.
type ProductUpdate struct {
	Name         *string                 `json:"name"`
	Price        *int64                  `json:"price"`
	Description  *string                 `json:"description"`
	Category     *domain.ProductCategory `json:"category"`
	Enabled      *bool                   `json:"enabled"`
	RoleID       *string                 `json:"role_id"`
	DurationDays *int                    `json:"duration_days"`
	Multiplier   *float64                `json:"multiplier"`
}

// EditProduct applies a partial update to a catalog entry.
func (s *ShopService) EditProduct(ctx context.Context, productID string, upd ProductUpdate) (*domain.VirtualProduct, error) {
	if upd.Price != nil && *upd.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if upd.Category != nil && !domain.ValidCategory(*upd.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, *upd.Category)
	}

	var out *domain.VirtualProduct
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		p, ok := doc.VirtualShop.Products[productID]
		if !ok {
			return ErrProductNotFound
		}
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Price != nil {
			p.Price = *upd.Price
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Category != nil {
			p.Category = *upd.Category
		}
		if upd.Enabled != nil {
			p.Enabled = *upd.Enabled
		}
		if upd.RoleID != nil {
			p.RoleID = *upd.RoleID
		}
		if upd.DurationDays != nil {
			p.DurationDays = *upd.DurationDays
		}
		if upd.Multiplier != nil {
			p.Multiplier = *upd.Multiplier
		}
		now := s.eco.now()
		p.UpdatedAt = &now
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveProduct deletes a catalog entry. Purchase records survive; they
// carry their own name/price snapshots.
func (s *ShopService) RemoveProduct(ctx context.Context, productID string) error {
	return s.eco.update(ctx, func(doc *domain.Document) error {
		if _, ok := doc.VirtualShop.Products[productID]; !ok {
			return ErrProductNotFound
		}
		delete(doc.VirtualShop.Products, productID)
		return nil
	})
}

// Products lists the catalog sorted by price ascending. With includeDisabled
// false (the user-facing shop) disabled entries are hidden.
func (s *ShopService) Products(ctx context.Context, includeDisabled bool) ([]*domain.VirtualProduct, error) {
	var out []*domain.VirtualProduct
	err := s.eco.view(ctx, func(doc *domain.Document) error {
		for _, p := range doc.VirtualShop.Products {
			if !includeDisabled && !p.Enabled {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// PurchaseResult is a successful buy: the entitlement plus the buyer's
// fresh balance.
type PurchaseResult struct {
	Purchase   *domain.Purchase `json:"purchase"`
	NewBalance int64            `json:"new_balance"`
}

// Buy debits the price and appends the entitlement record in one ledger
// update. Permanent role products reject a second buy; time-limited ones
// may be repurchased.
func (s *ShopService) Buy(ctx context.Context, userID, productID string) (*PurchaseResult, error) {
	var out PurchaseResult
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		if !doc.VirtualShop.Settings.Enabled {
			return ErrShopDisabled
		}
		p, ok := doc.VirtualShop.Products[productID]
		if !ok {
			return ErrProductNotFound
		}
		if !p.Enabled {
			return ErrProductDisabled
		}

		now := s.eco.now()
		acc := s.eco.account(doc, userID)
		if p.Permanent() && p.Category == domain.CategoryRoles {
			for _, prev := range doc.VirtualShop.Purchases {
				if prev.UserID == userID && prev.ProductID == productID && prev.Active && !prev.Expired(now) {
					return ErrAlreadyOwned
				}
			}
		}
		if acc.Coins < p.Price {
			return &ShortfallError{Price: p.Price, Balance: acc.Coins}
		}

		if err := s.eco.debit(doc, userID, p.Price); err != nil {
			return err
		}

		rec := &domain.Purchase{
			ID:          uuid.NewString(),
			UserID:      userID,
			ProductID:   p.ID,
			ProductName: p.Name,
			PricePaid:   p.Price,
			PurchasedAt: now,
			Active:      true,
		}
		if !p.Permanent() {
			exp := now.AddDate(0, 0, p.DurationDays)
			rec.ExpiresAt = &exp
		}
		doc.VirtualShop.Purchases[rec.ID] = rec
		p.PurchasesCount++

		out = PurchaseResult{Purchase: rec, NewBalance: acc.Coins}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchasesTotal.Inc()
	logger.Info("product purchased", "user", userID, "product", productID, "price", out.Purchase.PricePaid)
	return &out, nil
}

// reapExpired flips active off for lapsed entitlements. Returns whether
// anything changed so read paths can skip the save.
func reapExpired(doc *domain.Document, now time.Time) bool {
	changed := false
	for _, rec := range doc.VirtualShop.Purchases {
		if rec.Active && rec.Expired(now) {
			rec.Active = false
			changed = true
		}
	}
	return changed
}

// UserPurchases lists the user's entitlements, newest first. Lapsed ones
// are flipped inactive and the flip is persisted as a side effect of the
// read.
func (s *ShopService) UserPurchases(ctx context.Context, userID string) ([]*domain.Purchase, error) {
	var out []*domain.Purchase
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		reapExpired(doc, s.eco.now())
		for _, rec := range doc.VirtualShop.Purchases {
			if rec.UserID == userID {
				out = append(out, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.After(out[j].PurchasedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ShopStats is the owner-facing aggregate over catalog and entitlements.
// Revenue counts active purchases only.
type ShopStats struct {
	Products        int     `json:"products"`
	EnabledProducts int     `json:"enabled_products"`
	ActivePurchases int     `json:"active_purchases"`
	TotalRevenue    int64   `json:"total_revenue"`
	TaxRate         float64 `json:"tax_rate"`
}

// Stats aggregates the catalog and entitlement counters, reaping lapsed
// entitlements first.
func (s *ShopService) Stats(ctx context.Context) (*ShopStats, error) {
	var out ShopStats
	err := s.eco.update(ctx, func(doc *domain.Document) error {
		reapExpired(doc, s.eco.now())
		out.TaxRate = doc.VirtualShop.Settings.TaxRate
		out.Products = len(doc.VirtualShop.Products)
		for _, p := range doc.VirtualShop.Products {
			if p.Enabled {
				out.EnabledProducts++
			}
		}
		for _, rec := range doc.VirtualShop.Purchases {
			if rec.Active {
				out.ActivePurchases++
				out.TotalRevenue += rec.PricePaid
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
