package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamecoins_bot/internal/domain"
)

func newTestShop(t *testing.T) (*ShopService, *EconomyService, *time.Time) {
	t.Helper()
	eco, clock := newTestEconomy()
	return NewShopService(eco), eco, clock
}

func TestAddProductCategoryInference(t *testing.T) {
	shop, _, _ := newTestShop(t)
	ctx := context.Background()

	role, err := shop.AddProduct(ctx, NewProduct{Name: "VIP", Price: 500, RoleID: "role-123"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if role.Category != domain.CategoryRoles {
		t.Errorf("role product category = %s, want roles", role.Category)
	}

	boost, _ := shop.AddProduct(ctx, NewProduct{Name: "2x XP", Price: 300, Multiplier: 2.0})
	if boost.Category != domain.CategoryBoosters {
		t.Errorf("multiplier product category = %s, want boosters", boost.Category)
	}

	plain, _ := shop.AddProduct(ctx, NewProduct{Name: "Sticker", Price: 50})
	if plain.Category != domain.CategoryOther {
		t.Errorf("plain product category = %s, want other", plain.Category)
	}

	explicit, _ := shop.AddProduct(ctx, NewProduct{Name: "Hat", Price: 75, Category: domain.CategoryCosmetics, RoleID: "r"})
	if explicit.Category != domain.CategoryCosmetics {
		t.Errorf("explicit category overridden to %s", explicit.Category)
	}
}

func TestAddProductRejectsBadInput(t *testing.T) {
	shop, _, _ := newTestShop(t)
	ctx := context.Background()

	if _, err := shop.AddProduct(ctx, NewProduct{Name: "Free", Price: 0}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("zero price err = %v", err)
	}
	if _, err := shop.AddProduct(ctx, NewProduct{Price: 10}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("empty name err = %v", err)
	}
	if _, err := shop.AddProduct(ctx, NewProduct{Name: "X", Price: 10, Category: "weapons"}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("bad category err = %v", err)
	}
}

func TestEditProductWhitelist(t *testing.T) {
	shop, _, _ := newTestShop(t)
	ctx := context.Background()

	p, _ := shop.AddProduct(ctx, NewProduct{Name: "VIP", Price: 500, RoleID: "r1"})

	newPrice := int64(400)
	disabled := false
	upd, err := shop.EditProduct(ctx, p.ID, ProductUpdate{Price: &newPrice, Enabled: &disabled})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if upd.Price != 400 || upd.Enabled {
		t.Errorf("edit not applied: %+v", upd)
	}
	if upd.Name != "VIP" || upd.RoleID != "r1" {
		t.Errorf("untouched fields changed: %+v", upd)
	}
	if upd.UpdatedAt == nil {
		t.Error("updated_at not stamped")
	}

	if _, err := shop.EditProduct(ctx, "missing", ProductUpdate{}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("edit missing err = %v", err)
	}
}

func TestProductsListing(t *testing.T) {
	shop, _, _ := newTestShop(t)
	ctx := context.Background()

	shop.AddProduct(ctx, NewProduct{Name: "Costly", Price: 900})
	shop.AddProduct(ctx, NewProduct{Name: "Cheap", Price: 10})
	hidden, _ := shop.AddProduct(ctx, NewProduct{Name: "Hidden", Price: 50})
	off := false
	shop.EditProduct(ctx, hidden.ID, ProductUpdate{Enabled: &off})

	visible, err := shop.Products(ctx, false)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("user listing has %d products, want 2", len(visible))
	}
	if visible[0].Name != "Cheap" || visible[1].Name != "Costly" {
		t.Errorf("not sorted by price: %s, %s", visible[0].Name, visible[1].Name)
	}

	all, _ := shop.Products(ctx, true)
	if len(all) != 3 {
		t.Errorf("owner listing has %d products, want 3", len(all))
	}
}

func TestBuyDebitsAndRecords(t *testing.T) {
	shop, eco, _ := newTestShop(t)
	ctx := context.Background()

	p, _ := shop.AddProduct(ctx, NewProduct{Name: "Sticker", Price: 60})

	res, err := shop.Buy(ctx, "u1", p.ID)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if res.NewBalance != 40 {
		t.Errorf("balance = %d, want 40", res.NewBalance)
	}
	if res.Purchase.ProductName != "Sticker" || res.Purchase.PricePaid != 60 {
		t.Errorf("snapshot wrong: %+v", res.Purchase)
	}
	if !res.Purchase.Active || res.Purchase.ExpiresAt != nil {
		t.Errorf("permanent purchase state: %+v", res.Purchase)
	}

	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.TotalSpent != 60 {
		t.Errorf("total spent = %d, want 60", acc.TotalSpent)
	}

	// Catalog counter moved.
	all, _ := shop.Products(ctx, true)
	if all[0].PurchasesCount != 1 {
		t.Errorf("purchases count = %d, want 1", all[0].PurchasesCount)
	}
}

func TestBuyShortfall(t *testing.T) {
	shop, eco, _ := newTestShop(t)
	ctx := context.Background()

	p, _ := shop.AddProduct(ctx, NewProduct{Name: "Gold Role", Price: 350, RoleID: "r"})

	_, err := shop.Buy(ctx, "u1", p.ID)
	var shortfall *ShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("err = %v, want ShortfallError", err)
	}
	if shortfall.Shortfall() != 250 {
		t.Errorf("shortfall = %d, want 250", shortfall.Shortfall())
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Error("shortfall must unwrap to ErrInsufficientFunds")
	}

	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.Coins != 100 {
		t.Errorf("rejected buy moved coins: %d", acc.Coins)
	}
}

func TestBuyRejections(t *testing.T) {
	shop, eco, _ := newTestShop(t)
	ctx := context.Background()

	if _, err := shop.Buy(ctx, "u1", "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("missing product err = %v", err)
	}

	p, _ := shop.AddProduct(ctx, NewProduct{Name: "Off", Price: 10})
	off := false
	shop.EditProduct(ctx, p.ID, ProductUpdate{Enabled: &off})
	if _, err := shop.Buy(ctx, "u1", p.ID); !errors.Is(err, ErrProductDisabled) {
		t.Errorf("disabled product err = %v", err)
	}
	_ = eco
}

func TestDuplicatePermanentRoleBlocked(t *testing.T) {
	shop, eco, _ := newTestShop(t)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 1000)
	p, _ := shop.AddProduct(ctx, NewProduct{Name: "VIP", Price: 200, RoleID: "r"})

	if _, err := shop.Buy(ctx, "u1", p.ID); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if _, err := shop.Buy(ctx, "u1", p.ID); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("second buy err = %v, want ErrAlreadyOwned", err)
	}

	acc, _ := eco.GetAccount(ctx, "u1")
	if acc.Coins != 800 {
		t.Errorf("rejected re-buy moved coins: %d", acc.Coins)
	}

	// Another user can still buy the same role.
	eco.SetBalance(ctx, "u2", 1000)
	if _, err := shop.Buy(ctx, "u2", p.ID); err != nil {
		t.Errorf("other user's buy: %v", err)
	}
}

func TestTimedProductsStackAndExpire(t *testing.T) {
	shop, eco, clock := newTestShop(t)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 1000)
	p, _ := shop.AddProduct(ctx, NewProduct{Name: "Day Boost", Price: 100, Multiplier: 1.5, DurationDays: 1})

	if _, err := shop.Buy(ctx, "u1", p.ID); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	// Timed products may be repurchased.
	if _, err := shop.Buy(ctx, "u1", p.ID); err != nil {
		t.Fatalf("stacked buy: %v", err)
	}

	purchases, _ := shop.UserPurchases(ctx, "u1")
	if len(purchases) != 2 {
		t.Fatalf("got %d purchases, want 2", len(purchases))
	}
	for _, rec := range purchases {
		if !rec.Active || rec.ExpiresAt == nil {
			t.Errorf("fresh timed purchase: %+v", rec)
		}
	}

	// Two days later both have lapsed, and the flip persists.
	*clock = clock.Add(48 * time.Hour)
	purchases, _ = shop.UserPurchases(ctx, "u1")
	for _, rec := range purchases {
		if rec.Active {
			t.Errorf("lapsed purchase still active: %+v", rec)
		}
	}
	purchases, _ = shop.UserPurchases(ctx, "u1")
	for _, rec := range purchases {
		if rec.Active {
			t.Error("expiry flip did not persist")
		}
	}
}

func TestRemoveProductKeepsHistory(t *testing.T) {
	shop, eco, _ := newTestShop(t)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 1000)
	p, _ := shop.AddProduct(ctx, NewProduct{Name: "Relic", Price: 100})
	shop.Buy(ctx, "u1", p.ID)

	if err := shop.RemoveProduct(ctx, p.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := shop.RemoveProduct(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("re-remove err = %v", err)
	}

	purchases, _ := shop.UserPurchases(ctx, "u1")
	if len(purchases) != 1 || purchases[0].ProductName != "Relic" {
		t.Errorf("history lost after removal: %+v", purchases)
	}
}

func TestShopStats(t *testing.T) {
	shop, eco, clock := newTestShop(t)
	ctx := context.Background()

	eco.SetBalance(ctx, "u1", 10000)
	perm, _ := shop.AddProduct(ctx, NewProduct{Name: "Badge", Price: 100})
	timed, _ := shop.AddProduct(ctx, NewProduct{Name: "Boost", Price: 50, Multiplier: 2, DurationDays: 1})
	off, _ := shop.AddProduct(ctx, NewProduct{Name: "Off", Price: 10})
	disabled := false
	shop.EditProduct(ctx, off.ID, ProductUpdate{Enabled: &disabled})

	shop.Buy(ctx, "u1", perm.ID)
	shop.Buy(ctx, "u1", timed.ID)

	*clock = clock.Add(48 * time.Hour)

	stats, err := shop.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Products != 3 || stats.EnabledProducts != 2 {
		t.Errorf("product counts: %+v", stats)
	}
	// The timed purchase lapsed; only the permanent one counts.
	if stats.ActivePurchases != 1 || stats.TotalRevenue != 100 {
		t.Errorf("purchase stats: %+v", stats)
	}
}
