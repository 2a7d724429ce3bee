package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/pkg/cipher"
)

type recordingSender struct {
	kinds []string
}

func (r *recordingSender) Notify(ctx context.Context, kind string, bookingID int64, customer, phone string) error {
	r.kinds = append(r.kinds, kind)
	return nil
}

func setupService(t *testing.T) (*Service, *gorm.DB, *recordingSender) {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Product{}, &domain.Reservation{}, &domain.Booking{},
		&domain.ReviewSubmission{}, &domain.PendingChange{},
	))

	c, err := cipher.New("test-field-cipher-key")
	require.NoError(t, err)

	sender := &recordingSender{}
	return NewService(db, c, sender), db, sender
}

func seedPair(t *testing.T, db *gorm.DB, name string) (*domain.Reservation, *domain.Booking) {
	t.Helper()
	res := &domain.Reservation{
		Tier:        domain.TierStandard,
		WeddingDate: time.Now().AddDate(0, 3, 0),
		Status:      domain.ReservationConfirmed,
	}
	require.NoError(t, db.Create(res).Error)

	product := &domain.Product{Tier: domain.TierStandard, Name: "STANDARD", Price: 600_000}
	require.NoError(t, db.Where("tier = ?", product.Tier).FirstOrCreate(product).Error)

	booking := &domain.Booking{
		ReservationID: &res.ID,
		CustomerName:  name,
		Phone:         "010-1234-5678",
		ProductID:     product.ID,
		WeddingDate:   res.WeddingDate,
		Status:        domain.BookingConfirmed,
	}
	require.NoError(t, db.Create(booking).Error)
	require.NoError(t, db.Model(res).Update("booking_id", booking.ID).Error)
	return res, booking
}

func TestUpdateStatus_NotifiesOnTransitions(t *testing.T) {
	svc, db, sender := setupService(t)
	_, booking := seedPair(t, db, "김철수")
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, booking.ID, domain.BookingDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingDelivered, updated.Status)
	assert.Equal(t, []string{"video"}, sender.kinds)

	// Same-status update is a no-op without a second message.
	_, err = svc.UpdateStatus(ctx, booking.ID, domain.BookingDelivered)
	require.NoError(t, err)
	assert.Equal(t, []string{"video"}, sender.kinds)

	_, err = svc.UpdateStatus(ctx, booking.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, db, _ := setupService(t)
	_, booking := seedPair(t, db, "김철수")
	ctx := context.Background()

	require.NoError(t, svc.SoftDelete(ctx, booking.ID))

	var after domain.Booking
	require.NoError(t, db.First(&after, booking.ID).Error)
	require.NotNil(t, after.DeletedAt)

	// Deleting again keeps the original timestamp.
	firstDeletedAt := *after.DeletedAt
	require.NoError(t, svc.SoftDelete(ctx, booking.ID))
	require.NoError(t, db.First(&after, booking.ID).Error)
	assert.WithinDuration(t, firstDeletedAt, *after.DeletedAt, time.Second)

	require.NoError(t, svc.Restore(ctx, booking.ID))
	// Scan into a fresh struct: gorm leaves the stale pointer in place when
	// the column comes back NULL.
	var restored domain.Booking
	require.NoError(t, db.First(&restored, booking.ID).Error)
	assert.Nil(t, restored.DeletedAt)

	assert.ErrorIs(t, svc.Restore(ctx, booking.ID), ErrNotDeleted)
}

func TestPurgeExpired(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	resOld, oldBooking := seedPair(t, db, "김철수")
	resFresh, freshBooking := seedPair(t, db, "박민수")

	old := time.Now().Add(-purgeGrace - time.Hour)
	recent := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(oldBooking).Update("deleted_at", old).Error)
	require.NoError(t, db.Model(freshBooking).Update("deleted_at", recent).Error)

	// The old pair drags its dependent rows along.
	require.NoError(t, db.Create(&domain.PendingChange{
		ReservationID: resOld.ID, Changes: []byte(`{}`), Status: domain.ChangePending,
	}).Error)

	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&domain.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&domain.PendingChange{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	assert.Error(t, db.First(&domain.Reservation{}, resOld.ID).Error)
	assert.NoError(t, db.First(&domain.Reservation{}, resFresh.ID).Error)

	// Idempotent: a second run finds nothing.
	purged, err = svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)
}

func TestList_SkipsDeletedAndFilters(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	_, live := seedPair(t, db, "김철수")
	_, gone := seedPair(t, db, "박민수")
	require.NoError(t, db.Model(gone).Update("deleted_at", time.Now()).Error)

	bookings, total, err := svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, live.ID, bookings[0].ID)

	bookings, _, err = svc.List(ctx, ListQuery{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	bookings, _, err = svc.List(ctx, ListQuery{Query: "철수"})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "김철수", bookings[0].CustomerName)

	_, _, err = svc.List(ctx, ListQuery{Status: "SHIPPED"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnonymizeExpired(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	res, booking := seedPair(t, db, "김철수")
	require.NoError(t, db.Model(&domain.Reservation{}).Where("id = ?", res.ID).
		Update("phone", "ciphertext-phone").Error)

	old := time.Now().Add(-retention - 24*time.Hour)
	require.NoError(t, db.Model(&domain.Booking{}).Where("id = ?", booking.ID).
		Update("created_at", old).Error)

	done, err := svc.AnonymizeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)

	var after domain.Booking
	require.NoError(t, db.First(&after, booking.ID).Error)
	assert.Equal(t, "김**", after.CustomerName)
	assert.Empty(t, after.Phone)
	assert.True(t, after.Anonymized)
	require.NotNil(t, after.AnonymizedAt)

	var resAfter domain.Reservation
	require.NoError(t, db.First(&resAfter, res.ID).Error)
	assert.Empty(t, resAfter.Phone)

	// Already-anonymized rows are skipped on the next run.
	done, err = svc.AnonymizeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), done)
}

func TestCreateDirect_PairsSyntheticReservation(t *testing.T) {
	svc, db, _ := setupService(t)

	booking, err := svc.CreateDirect(context.Background(), CreateDirectRequest{
		CustomerName: "김철수",
		Phone:        "010-1234-5678",
		Tier:         "BASIC",
		WeddingDate:  time.Now().AddDate(0, 3, 0).Format("2006-01-02"),
		Region:       "서울",
	})
	require.NoError(t, err)
	require.NotNil(t, booking.ReservationID)

	assert.Equal(t, int64(340_000), booking.ListPrice)
	assert.Equal(t, int64(240_000), booking.FinalBalance)

	var res domain.Reservation
	require.NoError(t, db.First(&res, *booking.ReservationID).Error)
	require.NotNil(t, res.BookingID)
	assert.Equal(t, booking.ID, *res.BookingID)
	assert.Equal(t, booking.FinalBalance, res.FinalBalance)

	// Identity is ciphertext on the synthetic reservation too.
	assert.NotEqual(t, "김철수", res.CustomerName)

	_, err = svc.CreateDirect(context.Background(), CreateDirectRequest{
		CustomerName: "김철수", Phone: "010-1234-5678",
		Tier: "GOLD", WeddingDate: "2026-01-01",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
