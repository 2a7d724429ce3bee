package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"weddingstudio/internal/domain"
)

type fakeScraper struct {
	page *Page
	err  error
}

func (f *fakeScraper) Fetch(ctx context.Context, url string) (*Page, error) {
	return f.page, f.err
}

func goodPage() *Page {
	return &Page{Title: "본식 영상 후기", Body: strings.Repeat("정말 만족스러운 영상이었어요 ", 40)}
}

func setupService(t *testing.T, scraper Scraper) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Reservation{}, &domain.Booking{}, &domain.ReviewSubmission{}))
	return NewService(db, scraper), db
}

func seedPair(t *testing.T, db *gorm.DB, tier domain.ProductTier) *domain.Reservation {
	t.Helper()

	list := int64(600_000)
	if tier == domain.TierBasic {
		list = 340_000
	}

	res := &domain.Reservation{
		CustomerName:  "enc",
		Phone:         "enc",
		Tier:          tier,
		WeddingDate:   time.Now().AddDate(0, 6, 0),
		TotalAmount:   list,
		DepositAmount: 100_000,
		FinalBalance:  list - 100_000,
		Status:        domain.ReservationConfirmed,
	}
	require.NoError(t, db.Create(res).Error)

	b := &domain.Booking{
		ReservationID: &res.ID,
		CustomerName:  "김철수",
		ProductID:     1,
		WeddingDate:   res.WeddingDate,
		ListPrice:     list,
		DepositAmount: 100_000,
		FinalBalance:  list - 100_000,
		Status:        domain.BookingConfirmed,
	}
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Model(res).Update("booking_id", b.ID).Error)
	res.BookingID = &b.ID
	return res
}

func TestSubmit_NaverBlogAutoApproved(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)

	sub, err := svc.Submit(context.Background(), res.ID, "https://blog.naver.com/bride/223001", domain.ReviewForShooting)
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewAutoApproved, sub.Status)
	assert.True(t, sub.TitleMatched)
	assert.True(t, sub.LengthMatched)
	assert.NotNil(t, sub.DecidedAt)
}

func TestSubmit_FailedChecksRouteToManual(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: &Page{Title: "일상", Body: "짧음"}})
	res := seedPair(t, svc.db, domain.TierStandard)

	sub, err := svc.Submit(context.Background(), res.ID, "https://blog.naver.com/bride/223001", domain.ReviewForShooting)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewManual, sub.Status)
}

func TestSubmit_ScrapeErrorRoutesToManual(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{err: errors.New("timeout")})
	res := seedPair(t, svc.db, domain.TierStandard)

	sub, err := svc.Submit(context.Background(), res.ID, "https://blog.naver.com/bride/223001", domain.ReviewForShooting)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewManual, sub.Status)
}

func TestSubmit_UnscrapablePlatformAlwaysManual(t *testing.T) {
	// Content is perfect, but the platform cannot be scraped reliably.
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)

	sub, err := svc.Submit(context.Background(), res.ID, "https://cafe.naver.com/wedding/9001", domain.ReviewForShooting)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewManual, sub.Status)
}

func TestSubmit_InvalidURL(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})

	_, err := svc.Submit(context.Background(), 1, "not a url", domain.ReviewForShooting)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = svc.Submit(context.Background(), 1, "ftp://blog.naver.com/x", domain.ReviewForShooting)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestSubmit_DuplicateNormalizedURL(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/223001", domain.ReviewForShooting)
	require.NoError(t, err)

	// Cosmetic variant of the accepted URL.
	_, err = svc.Submit(ctx, res.ID, "https://m.blog.naver.com/bride/223001?fromRss=true", domain.ReviewForShooting)
	assert.ErrorIs(t, err, ErrDuplicateURL)
}

func TestSubmit_PlatformCapForShooting(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/223001", domain.ReviewForShooting)
	require.NoError(t, err)

	// Second NAVER_BLOG shooting review is over the per-platform cap.
	_, err = svc.Submit(ctx, res.ID, "https://blog.naver.com/groom/993847", domain.ReviewForShooting)
	assert.ErrorIs(t, err, ErrPlatformCapExceeded)

	// A different platform still goes through.
	sub, err := svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/5", domain.ReviewForShooting)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformNaverCafe, sub.Platform)
}

func TestSubmit_BookingTypeCap(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierPremium)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/1", domain.ReviewForBooking)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/2", domain.ReviewForBooking)
	assert.ErrorIs(t, err, ErrCapExceeded)
}

func TestThresholdDiscount_AppliedOnceAtTwoAccepted(t *testing.T) {
	svc, db := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/1", domain.ReviewForShooting)
	require.NoError(t, err)

	var mid domain.Reservation
	require.NoError(t, db.First(&mid, res.ID).Error)
	assert.Equal(t, int64(0), mid.ReviewDiscount, "one accepted review is below threshold")

	// Second accepted review crosses the threshold. NAVER_CAFE routes to
	// manual, so approve it by staff action.
	sub2, err := svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/2", domain.ReviewForShooting)
	require.NoError(t, err)
	_, err = svc.Decide(ctx, sub2.ID, true, "")
	require.NoError(t, err)

	var after domain.Reservation
	require.NoError(t, db.First(&after, res.ID).Error)
	assert.Equal(t, int64(30_000), after.ReviewDiscount)
	assert.True(t, after.ReviewEvent)
	assert.Equal(t, int64(470_000), after.FinalBalance)

	var b domain.Booking
	require.NoError(t, db.First(&b, *after.BookingID).Error)
	assert.Equal(t, int64(30_000), b.ReviewDiscount)
	assert.Equal(t, after.FinalBalance, b.FinalBalance)

	// A third accepted review must not apply the discount again.
	sub3, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/extra/3", domain.ReviewForBooking)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewAutoApproved, sub3.Status)

	var final domain.Reservation
	require.NoError(t, db.First(&final, res.ID).Error)
	assert.Equal(t, int64(30_000), final.ReviewDiscount)
	assert.Equal(t, int64(470_000), final.FinalBalance)
}

func TestBasicTierUnlocksOriginalFootage(t *testing.T) {
	svc, db := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierBasic)
	ctx := context.Background()

	balanceBefore := res.FinalBalance

	_, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/1", domain.ReviewForShooting)
	require.NoError(t, err)

	var after domain.Reservation
	require.NoError(t, db.First(&after, res.ID).Error)
	assert.True(t, after.OriginalFootage)
	assert.Equal(t, int64(0), after.ReviewDiscount, "BASIC benefit is non-monetary")
	assert.Equal(t, balanceBefore, after.FinalBalance)
}

func TestDecide_RejectAcceptedReversesDiscount(t *testing.T) {
	svc, db := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	sub1, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/1", domain.ReviewForShooting)
	require.NoError(t, err)
	sub2, err := svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/2", domain.ReviewForShooting)
	require.NoError(t, err)
	_, err = svc.Decide(ctx, sub2.ID, true, "")
	require.NoError(t, err)

	var mid domain.Reservation
	require.NoError(t, db.First(&mid, res.ID).Error)
	require.Equal(t, int64(30_000), mid.ReviewDiscount)

	// Staff later rejects the auto-approved one; the benefit recomputes
	// from the remaining accepted set.
	_, err = svc.Decide(ctx, sub1.ID, false, "본식 후기가 아님")
	require.NoError(t, err)

	var after domain.Reservation
	require.NoError(t, db.First(&after, res.ID).Error)
	assert.Equal(t, int64(0), after.ReviewDiscount)
	assert.False(t, after.ReviewEvent)
	assert.Equal(t, int64(500_000), after.FinalBalance)

	var b domain.Booking
	require.NoError(t, db.First(&b, *after.BookingID).Error)
	assert.Equal(t, int64(0), b.ReviewDiscount)
	assert.Equal(t, int64(500_000), b.FinalBalance)
}

func TestDecide_ApproveAlreadyAccepted(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/1", domain.ReviewForShooting)
	require.NoError(t, err)
	require.Equal(t, domain.ReviewAutoApproved, sub.Status)

	_, err = svc.Decide(ctx, sub.ID, true, "")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestCancel(t *testing.T) {
	svc, db := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	manual, err := svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/1", domain.ReviewForShooting)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.ID, manual.ID))

	var cnt int64
	require.NoError(t, db.Model(&domain.ReviewSubmission{}).Where("reservation_id = ?", res.ID).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)

	// Accepted submissions are past the point of self-service withdrawal.
	accepted, err := svc.Submit(ctx, res.ID, "https://blog.naver.com/bride/2", domain.ReviewForShooting)
	require.NoError(t, err)
	err = svc.Cancel(ctx, res.ID, accepted.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	svc, _ := setupService(t, &fakeScraper{page: goodPage()})
	res := seedPair(t, svc.db, domain.TierStandard)
	other := seedPair(t, svc.db, domain.TierStandard)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, res.ID, "https://cafe.naver.com/wedding/1", domain.ReviewForShooting)
	require.NoError(t, err)

	err = svc.Cancel(ctx, other.ID, sub.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
