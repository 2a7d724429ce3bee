// Package pricing turns a reservation's product choices, add-ons and active
// discounts into the authoritative balance figures. Calculation is never
// incremental: every caller passes the full current input set and gets a
// complete Quote back, so repeated mutation cannot drift the totals.
package pricing

import (
	"strings"

	"weddingstudio/internal/domain"
)

type Input struct {
	Tier domain.ProductTier

	// Add-ons.
	MakeupShoot     bool
	PaebaekShoot    bool
	ReceptionShoot  bool
	UsbOption       bool
	GimbalOption    bool
	DroneOption     bool
	HighlightOption bool

	// Discount flags.
	NewYearEvent    bool
	ReviewBlogEvent bool

	// MainCompany is the free-text "main photography company" field; a
	// partner match grants the affiliate discount on the upper tiers.
	MainCompany string

	TravelFee int64

	// Carried-over discount buckets owned by other subsystems. They pass
	// through to the final balance untouched.
	ReferralDiscount int64
	ReviewDiscount   int64
}

type Quote struct {
	BasePrice        int64 `json:"base_price"`
	AddOnsTotal      int64 `json:"add_ons_total"`
	ListPrice        int64 `json:"list_price"`
	TravelFee        int64 `json:"travel_fee"`
	DepositAmount    int64 `json:"deposit_amount"`
	DiscountAmount   int64 `json:"discount_amount"`
	ReferralDiscount int64 `json:"referral_discount"`
	ReviewDiscount   int64 `json:"review_discount"`
	FinalBalance     int64 `json:"final_balance"`
}

// EventFlagsForTier applies the tier business rule to the discount flags:
// a downgrade to BASIC force-clears new-year and review-blog. It must run on
// every tier change, not only at creation.
func EventFlagsForTier(tier domain.ProductTier, newYear, reviewBlog bool) (bool, bool) {
	if tier == domain.TierBasic {
		return false, false
	}
	return newYear, reviewBlog
}

// Calculate recomputes the full quote from the current input set.
func Calculate(in Input) Quote {
	in.NewYearEvent, in.ReviewBlogEvent = EventFlagsForTier(in.Tier, in.NewYearEvent, in.ReviewBlogEvent)

	base := TierPrice(in.Tier)
	addons := addOnsTotal(in)
	list := base + addons

	discount := int64(0)
	if in.NewYearEvent {
		discount += NewYearDiscount
	}
	if in.ReviewBlogEvent {
		discount += ReviewBlogDiscount
	}
	if AffiliateApplies(in.MainCompany, in.Tier) {
		discount += AffiliateDiscount
	}

	final := list + in.TravelFee - Deposit - discount - in.ReferralDiscount - in.ReviewDiscount
	if final < 0 {
		final = 0
	}

	return Quote{
		BasePrice:        base,
		AddOnsTotal:      addons,
		ListPrice:        list,
		TravelFee:        in.TravelFee,
		DepositAmount:    Deposit,
		DiscountAmount:   discount,
		ReferralDiscount: in.ReferralDiscount,
		ReviewDiscount:   in.ReviewDiscount,
		FinalBalance:     final,
	}
}

// AffiliateApplies reports whether the affiliate discount is active: the
// main photography company matches a known partner and the tier is one of
// the two upper tiers.
func AffiliateApplies(mainCompany string, tier domain.ProductTier) bool {
	if tier != domain.TierStandard && tier != domain.TierPremium {
		return false
	}
	company := strings.ToLower(strings.TrimSpace(mainCompany))
	if company == "" {
		return false
	}
	for _, partner := range affiliatePartners {
		if strings.Contains(company, strings.ToLower(partner)) {
			return true
		}
	}
	return false
}

// InputFromReservation builds the calculator input from a reservation's
// current state. TravelFee and the carried discount buckets come from the
// record itself.
func InputFromReservation(r *domain.Reservation) Input {
	return Input{
		Tier:             r.Tier,
		MakeupShoot:      r.MakeupShoot,
		PaebaekShoot:     r.PaebaekShoot,
		ReceptionShoot:   r.ReceptionShoot,
		UsbOption:        r.UsbOption,
		GimbalOption:     r.GimbalOption,
		DroneOption:      r.DroneOption,
		HighlightOption:  r.HighlightOption,
		NewYearEvent:     r.NewYearEvent,
		ReviewBlogEvent:  r.ReviewBlogEvent,
		MainCompany:      r.MainCompany,
		TravelFee:        r.TravelFee,
		ReferralDiscount: r.ReferralDiscount,
		ReviewDiscount:   r.ReviewDiscount,
	}
}

func addOnsTotal(in Input) int64 {
	var total int64
	if in.MakeupShoot {
		total += MakeupShootPrice
	}
	if in.PaebaekShoot {
		total += PaebaekShootPrice
	}
	if in.ReceptionShoot {
		total += ReceptionShootPrice
	}
	if in.UsbOption {
		total += UsbOptionPrice
	}
	if in.GimbalOption {
		total += GimbalOptionPrice
	}
	if in.DroneOption {
		total += DroneOptionPrice
	}
	if in.HighlightOption {
		total += HighlightPrice
	}
	return total
}

// FinalBalanceForBooking derives the balance due from a booking's own money
// columns. Same formula as the reservation side; the two must agree.
func FinalBalanceForBooking(b *domain.Booking) int64 {
	final := b.ListPrice + b.TravelFee - b.DepositAmount - b.EventDiscount - b.ReferralDiscount - b.ReviewDiscount
	if final < 0 {
		final = 0
	}
	return final
}

// FinalBalanceForReservation derives the balance due from a reservation's
// own money columns.
func FinalBalanceForReservation(r *domain.Reservation) int64 {
	final := r.TotalAmount + r.TravelFee - r.DepositAmount - r.DiscountAmount - r.ReferralDiscount - r.ReviewDiscount
	if final < 0 {
		final = 0
	}
	return final
}

// ApplyQuote writes a quote back onto the paired records so the two stay
// numerically consistent. Callers persist both rows in one transaction.
func ApplyQuote(q Quote, r *domain.Reservation, b *domain.Booking) {
	if r != nil {
		r.TotalAmount = q.ListPrice
		r.TravelFee = q.TravelFee
		r.DepositAmount = q.DepositAmount
		r.DiscountAmount = q.DiscountAmount
		r.ReferralDiscount = q.ReferralDiscount
		r.ReviewDiscount = q.ReviewDiscount
		r.FinalBalance = q.FinalBalance
	}
	if b != nil {
		b.ListPrice = q.ListPrice
		b.TravelFee = q.TravelFee
		b.DepositAmount = q.DepositAmount
		b.EventDiscount = q.DiscountAmount
		b.ReferralDiscount = q.ReferralDiscount
		b.ReviewDiscount = q.ReviewDiscount
		b.FinalBalance = q.FinalBalance
	}
}
