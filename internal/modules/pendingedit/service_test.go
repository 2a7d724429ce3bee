package pendingedit

import (
	"context"
	"encoding/json"
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

func setupService(t *testing.T) (*Service, *gorm.DB, *cipher.Cipher) {
	t.Helper()
	dsn := fmt.Sprintf("file:pendingedit_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Reservation{}, &domain.PendingChange{}))

	c, err := cipher.New("test-field-cipher-key")
	require.NoError(t, err)
	return NewService(db, c), db, c
}

func seedReservation(t *testing.T, db *gorm.DB, c *cipher.Cipher) *domain.Reservation {
	t.Helper()
	res := &domain.Reservation{
		CustomerName: c.Encrypt("김철수"),
		BrideName:    c.Encrypt("이영희"),
		Phone:        c.Encrypt("010-1234-5678"),
		Address:      c.Encrypt("서울시 강남구 테헤란로 123"),
		Tier:         domain.TierStandard,
		WeddingDate:  time.Now().AddDate(0, 6, 0),
		WeddingVenue: "더채플앳청담",
		Status:       domain.ReservationPending,
	}
	require.NoError(t, db.Create(res).Error)
	return res
}

func strPtr(s string) *string { return &s }

func decodeChanges(t *testing.T, change *domain.PendingChange) map[string]domain.FieldChange {
	t.Helper()
	var diff map[string]domain.FieldChange
	require.NoError(t, json.Unmarshal(change.Changes, &diff))
	return diff
}

func TestSubmit_PhoneDiffStoredMasked(t *testing.T) {
	svc, db, c := setupService(t)
	res := seedReservation(t, db, c)

	staged, err := svc.Submit(context.Background(), res.ID, EditRequest{
		Phone: strPtr("010-9876-5432"),
	})
	require.NoError(t, err)
	assert.True(t, staged)

	change, err := svc.GetPending(context.Background(), res.ID)
	require.NoError(t, err)

	diff := decodeChanges(t, change)
	require.Len(t, diff, 1)
	assert.Equal(t, "010-****-5678", diff["phone"].Old)
	assert.Equal(t, "010-****-5432", diff["phone"].New)

	// The live reservation is untouched.
	var after domain.Reservation
	require.NoError(t, db.First(&after, res.ID).Error)
	assert.Equal(t, "010-1234-5678", c.Decrypt(after.Phone))
}

func TestSubmit_NameAndAddressMasked(t *testing.T) {
	svc, db, c := setupService(t)
	res := seedReservation(t, db, c)

	staged, err := svc.Submit(context.Background(), res.ID, EditRequest{
		CustomerName: strPtr("김영수"),
		Address:      strPtr("부산시 해운대구 우동 456"),
	})
	require.NoError(t, err)
	assert.True(t, staged)

	change, err := svc.GetPending(context.Background(), res.ID)
	require.NoError(t, err)

	diff := decodeChanges(t, change)
	assert.Equal(t, "김**", diff["customer_name"].Old)
	assert.Equal(t, "김**", diff["customer_name"].New)
	assert.Equal(t, "서울시 강남…", diff["address"].Old)
	assert.Equal(t, "부산시 해운…", diff["address"].New)
}

func TestSubmit_ZeroDiffIsNoOp(t *testing.T) {
	svc, db, c := setupService(t)
	res := seedReservation(t, db, c)

	// Same phone with different punctuation compares equal after
	// normalization; the venue is byte-identical.
	staged, err := svc.Submit(context.Background(), res.ID, EditRequest{
		Phone:        strPtr("01012345678"),
		WeddingVenue: strPtr("더채플앳청담"),
	})
	require.NoError(t, err)
	assert.False(t, staged)

	var count int64
	require.NoError(t, db.Model(&domain.PendingChange{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubmit_SecondEditOverwritesPendingRow(t *testing.T) {
	svc, db, c := setupService(t)
	res := seedReservation(t, db, c)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, EditRequest{Phone: strPtr("010-1111-2222")})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, res.ID, EditRequest{WeddingVenue: strPtr("그랜드힐컨벤션")})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.PendingChange{}).
		Where("reservation_id = ? AND status = ?", res.ID, domain.ChangePending).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	change, err := svc.GetPending(ctx, res.ID)
	require.NoError(t, err)
	diff := decodeChanges(t, change)
	require.Len(t, diff, 1)
	assert.Equal(t, "그랜드힐컨벤션", diff["wedding_venue"].New)
}

func TestSubmit_UnknownReservation(t *testing.T) {
	svc, _, _ := setupService(t)
	_, err := svc.Submit(context.Background(), 999, EditRequest{Phone: strPtr("010-1111-2222")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolve(t *testing.T) {
	svc, db, c := setupService(t)
	res := seedReservation(t, db, c)
	ctx := context.Background()

	_, err := svc.Submit(ctx, res.ID, EditRequest{Phone: strPtr("010-1111-2222")})
	require.NoError(t, err)
	change, err := svc.GetPending(ctx, res.ID)
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, change.ID, domain.ChangeApplied)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeApplied, resolved.Status)

	// Resolution is final.
	_, err = svc.Resolve(ctx, change.ID, domain.ChangeDiscarded)
	assert.ErrorIs(t, err, ErrResolved)

	// A resolved change no longer counts as the reservation's pending one.
	_, err = svc.GetPending(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// A fresh edit after resolution creates a new row.
	staged, err := svc.Submit(ctx, res.ID, EditRequest{Phone: strPtr("010-3333-4444")})
	require.NoError(t, err)
	assert.True(t, staged)
}
