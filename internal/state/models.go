package state

import "github.com/shopspring/decimal"

type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	SupplierID int64           `json:"supplierId"`
}

type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DraftProduct is the not-yet-submitted creation form state. All fields are
// raw form strings; the backend coerces them on create.
type DraftProduct struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	Price      string `json:"price"`
	SupplierID string `json:"supplierId"`
}

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type ChatMessage struct {
	ID   string `json:"id"` // Using UUID for external ID
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type SortKey string

const (
	SortByID       SortKey = "id"
	SortByName     SortKey = "name"
	SortByQuantity SortKey = "quantity"
	SortByPrice    SortKey = "price"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type SortConfig struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle returns the config that results from invoking a sort on key.
// Sorting the currently ascending key flips it to descending; any other
// invocation resets to ascending on that key. There is no unsorted state.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}
