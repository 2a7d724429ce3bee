package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingstudio/internal/domain"
)

func TestCalculate_BasicNoExtras(t *testing.T) {
	q := Calculate(Input{Tier: domain.TierBasic})

	assert.Equal(t, int64(340_000), q.BasePrice)
	assert.Equal(t, int64(340_000), q.ListPrice)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(100_000), q.DepositAmount)
	assert.Equal(t, int64(240_000), q.FinalBalance)
}

func TestCalculate_StandardMakeupNewYear(t *testing.T) {
	q := Calculate(Input{
		Tier:         domain.TierStandard,
		MakeupShoot:  true,
		NewYearEvent: true,
	})

	assert.Equal(t, int64(600_000), q.BasePrice)
	assert.Equal(t, int64(200_000), q.AddOnsTotal)
	assert.Equal(t, int64(800_000), q.ListPrice)
	assert.Equal(t, int64(50_000), q.DiscountAmount)
	assert.Equal(t, int64(650_000), q.FinalBalance)
}

func TestCalculate_BasicForceClearsEventFlags(t *testing.T) {
	// The same flags that discount STANDARD are cleared on BASIC.
	q := Calculate(Input{
		Tier:            domain.TierBasic,
		NewYearEvent:    true,
		ReviewBlogEvent: true,
	})

	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(240_000), q.FinalBalance)
}

func TestCalculate_LegacyTiersPriceZero(t *testing.T) {
	for _, tier := range []domain.ProductTier{domain.TierClassic, domain.TierDirector} {
		q := Calculate(Input{Tier: tier})
		assert.Equal(t, int64(0), q.BasePrice, string(tier))
		// Deposit still applies, so the balance clamps at zero.
		assert.Equal(t, int64(0), q.FinalBalance, string(tier))
	}
}

func TestCalculate_FinalBalanceNeverNegative(t *testing.T) {
	q := Calculate(Input{
		Tier:             domain.TierBasic,
		ReferralDiscount: 500_000,
		ReviewDiscount:   500_000,
	})
	assert.Equal(t, int64(0), q.FinalBalance)
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Input{
		Tier:             domain.TierPremium,
		MakeupShoot:      true,
		PaebaekShoot:     true,
		UsbOption:        true,
		NewYearEvent:     true,
		TravelFee:        70_000,
		ReferralDiscount: 10_000,
	}

	first := Calculate(in)
	second := Calculate(in)
	assert.Equal(t, first, second)
}

func TestCalculate_AllAddOns(t *testing.T) {
	q := Calculate(Input{
		Tier:            domain.TierPremium,
		MakeupShoot:     true,
		PaebaekShoot:    true,
		ReceptionShoot:  true,
		UsbOption:       true,
		GimbalOption:    true,
		DroneOption:     true,
		HighlightOption: true,
	})

	assert.Equal(t, int64(770_000), q.AddOnsTotal)
	assert.Equal(t, int64(1_670_000), q.ListPrice)
}

func TestAffiliateApplies(t *testing.T) {
	// Substring, case-insensitive, upper tiers only.
	assert.True(t, AffiliateApplies("데이몽 스튜디오", domain.TierStandard))
	assert.True(t, AffiliateApplies("OneF studio", domain.TierPremium))
	assert.False(t, AffiliateApplies("데이몽", domain.TierBasic))
	assert.False(t, AffiliateApplies("무명스튜디오", domain.TierPremium))
	assert.False(t, AffiliateApplies("", domain.TierStandard))
}

func TestCalculate_AffiliateDiscount(t *testing.T) {
	q := Calculate(Input{
		Tier:        domain.TierStandard,
		MainCompany: "데이몽",
	})
	assert.Equal(t, int64(30_000), q.DiscountAmount)
	assert.Equal(t, int64(470_000), q.FinalBalance)
}

func TestEventFlagsForTier(t *testing.T) {
	ny, rb := EventFlagsForTier(domain.TierBasic, true, true)
	assert.False(t, ny)
	assert.False(t, rb)

	ny, rb = EventFlagsForTier(domain.TierStandard, true, false)
	assert.True(t, ny)
	assert.False(t, rb)
}

func TestApplyQuote_PairedRecordsAgree(t *testing.T) {
	r := &domain.Reservation{}
	b := &domain.Booking{}

	q := Calculate(Input{Tier: domain.TierStandard, TravelFee: 30_000, NewYearEvent: true})
	ApplyQuote(q, r, b)

	assert.Equal(t, r.TotalAmount, b.ListPrice)
	assert.Equal(t, r.TravelFee, b.TravelFee)
	assert.Equal(t, r.DiscountAmount, b.EventDiscount)
	assert.Equal(t, r.FinalBalance, b.FinalBalance)
	assert.Equal(t, int64(480_000), r.FinalBalance)
}
