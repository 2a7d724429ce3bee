package pricing

import "weddingstudio/internal/domain"

// All amounts are KRW.

// Deposit is fixed at reservation time regardless of tier.
const Deposit int64 = 100_000

var tierPrices = map[domain.ProductTier]int64{
	domain.TierBasic:    340_000,
	domain.TierStandard: 600_000,
	domain.TierPremium:  900_000,

	// Legacy categories are priced outside the tier table.
	domain.TierClassic:  0,
	domain.TierDirector: 0,
}

// Add-on increments. Each applies independently of tier.
const (
	MakeupShootPrice    int64 = 200_000
	PaebaekShootPrice   int64 = 100_000
	ReceptionShootPrice int64 = 100_000
	UsbOptionPrice      int64 = 50_000
	GimbalOptionPrice   int64 = 70_000
	DroneOptionPrice    int64 = 150_000
	HighlightPrice      int64 = 100_000
)

// Fixed discount values.
const (
	NewYearDiscount    int64 = 50_000
	ReviewBlogDiscount int64 = 20_000
	AffiliateDiscount  int64 = 30_000

	// ReferralUnit is granted to each side of a referral.
	ReferralUnit int64 = 10_000

	// ReviewDiscountValue unlocks once ReviewCountThreshold accepted
	// reviews exist (tiers above BASIC).
	ReviewDiscountValue  int64 = 30_000
	ReviewCountThreshold       = 2
)

// affiliatePartners are the photography companies whose customers get the
// affiliate discount. Matched case-insensitively as a substring of the
// free-text "main photography company" field.
var affiliatePartners = []string{
	"데이몽",
	"세컨드플로우",
	"어반플레이스",
	"onef",
	"라움스튜디오",
}

// TierPrice returns the list price of a tier; legacy tiers resolve to zero.
func TierPrice(tier domain.ProductTier) int64 {
	return tierPrices[tier]
}
