package domain

import "encoding/json"

// Document is the whole persisted state blob. The economy and virtual shop
// sections are ours; every other top-level section (products, tickets,
// roblox_accounts, ...) belongs to collaborators and must survive a
// load/save cycle byte for byte. Those sections are carried in Extra.
type Document struct {
	Economy     EconomySection `json:"-"`
	VirtualShop ShopSection    `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// EconomySection holds the ledger and its aggregate counters.
type EconomySection struct {
	Users       map[string]*UserAccount `json:"users"`
	GlobalStats GlobalStats             `json:"global_stats"`
}

// GlobalStats are document-wide counters, maintained best-effort.
type GlobalStats struct {
	TotalGamesPlayed   int64 `json:"total_games_played"`
	TotalJobsCompleted int64 `json:"total_jobs_completed"`
}

// ShopSection holds the virtual catalog and the purchase log.
type ShopSection struct {
	Products  map[string]*VirtualProduct `json:"products"`
	Purchases map[string]*Purchase       `json:"purchases"`
	Settings  ShopSettings               `json:"settings"`
}

// ShopSettings are shop-wide toggles.
type ShopSettings struct {
	Enabled bool    `json:"enabled"`
	TaxRate float64 `json:"tax_rate"`
}

const (
	keyEconomy     = "economy"
	keyVirtualShop = "virtual_shop"
)

// NewDocument returns the default empty document used when nothing has been
// persisted yet or the stored blob is unreadable.
func NewDocument() *Document {
	return &Document{
		Economy: EconomySection{
			Users: make(map[string]*UserAccount),
		},
		VirtualShop: ShopSection{
			Products:  make(map[string]*VirtualProduct),
			Purchases: make(map[string]*Purchase),
			Settings:  ShopSettings{Enabled: true},
		},
		Extra: make(map[string]json.RawMessage),
	}
}

// MarshalJSON merges the typed sections back over the preserved raw ones.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Extra)+2)
	for k, v := range d.Extra {
		out[k] = v
	}

	eco, err := json.Marshal(d.Economy)
	if err != nil {
		return nil, err
	}
	out[keyEconomy] = eco

	shop, err := json.Marshal(d.VirtualShop)
	if err != nil {
		return nil, err
	}
	out[keyVirtualShop] = shop

	return json.Marshal(out)
}

// UnmarshalJSON splits our sections out and keeps everything else raw.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	def := NewDocument()
	d.Economy = def.Economy
	d.VirtualShop = def.VirtualShop
	d.Extra = make(map[string]json.RawMessage)

	for k, v := range raw {
		switch k {
		case keyEconomy:
			if err := json.Unmarshal(v, &d.Economy); err != nil {
				return err
			}
		case keyVirtualShop:
			if err := json.Unmarshal(v, &d.VirtualShop); err != nil {
				return err
			}
		default:
			d.Extra[k] = v
		}
	}

	// Stored sections may predate some maps.
	if d.Economy.Users == nil {
		d.Economy.Users = make(map[string]*UserAccount)
	}
	if d.VirtualShop.Products == nil {
		d.VirtualShop.Products = make(map[string]*VirtualProduct)
	}
	if d.VirtualShop.Purchases == nil {
		d.VirtualShop.Purchases = make(map[string]*Purchase)
	}
	return nil
}

// Clone deep-copies the document through its JSON form.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := NewDocument()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
