package domain

import "time"

type ProductTier string

const (
	TierBasic    ProductTier = "BASIC"
	TierStandard ProductTier = "STANDARD"
	TierPremium  ProductTier = "PREMIUM"

	// Legacy categories from the old price sheet. Their price lives outside
	// the tier table, so they resolve to zero here.
	TierClassic  ProductTier = "CLASSIC"
	TierDirector ProductTier = "DIRECTOR"
)

func (t ProductTier) Valid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium, TierClassic, TierDirector:
		return true
	}
	return false
}

// Legacy reports whether the tier is one of the zero-priced legacy categories.
func (t ProductTier) Legacy() bool {
	return t == TierClassic || t == TierDirector
}

type Product struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	Tier      ProductTier `json:"tier" gorm:"uniqueIndex;size:20;not null"`
	Name      string      `json:"name" gorm:"size:100"`
	Price     int64       `json:"price" gorm:"not null;default:0"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
