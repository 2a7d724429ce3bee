// Package booking exposes the staff-side ledger operations: list/search,
// status transitions, soft delete with a purge window, PII anonymization
// after the retention period, and direct entry with a synthetic paired
// reservation.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/modules/pricing"
	"weddingstudio/internal/notification"
	"weddingstudio/internal/pkg/cipher"
	"weddingstudio/internal/travel"
)

const (
	// purgeGrace is how long a soft-deleted booking survives before the
	// sweep hard-deletes it together with its paired reservation.
	purgeGrace = 72 * time.Hour

	// retention is the PII retention period, anchored on creation time.
	retention = 5 * 365 * 24 * time.Hour
)

type NotificationSender interface {
	Notify(ctx context.Context, kind string, bookingID int64, customer, phone string) error
}

type Service struct {
	db     *gorm.DB
	cipher *cipher.Cipher
	notifs NotificationSender
}

func NewService(db *gorm.DB, c *cipher.Cipher, notifs NotificationSender) *Service {
	return &Service{db: db, cipher: c, notifs: notifs}
}

// List returns the staff booking view. Expired soft-deleted rows are purged
// opportunistically before querying; a purge failure only logs.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Booking, int64, error) {
	if _, err := s.PurgeExpired(ctx); err != nil {
		log.Warn().Err(err).Msg("opportunistic purge failed")
	}

	query := s.db.WithContext(ctx).Model(&domain.Booking{}).Preload("Product")
	if !q.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if q.Status != "" {
		status := domain.BookingStatus(q.Status)
		if !status.Valid() {
			return nil, 0, ErrValidation
		}
		query = query.Where("status = ?", status)
	}
	if q.Query != "" {
		like := "%" + q.Query + "%"
		query = query.Where("customer_name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 200 {
		q.Limit = 50
	}

	var bookings []domain.Booking
	err := query.Order("wedding_date ASC").
		Offset((q.Page - 1) * q.Limit).Limit(q.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.db.WithContext(ctx).Preload("Product").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus moves the booking through the staff lifecycle. Confirming
// re-sends the contract message; delivery triggers the video message. Both
// are fire-and-forget.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, ErrValidation
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		return booking, nil
	}

	if err := s.db.WithContext(ctx).Model(booking).Update("status", status).Error; err != nil {
		return nil, err
	}
	booking.Status = status

	if s.notifs != nil && booking.Live() {
		switch status {
		case domain.BookingConfirmed:
			_ = s.notifs.Notify(ctx, notification.KindContract, booking.ID, booking.CustomerName, booking.Phone)
		case domain.BookingDelivered:
			_ = s.notifs.Notify(ctx, notification.KindVideo, booking.ID, booking.CustomerName, booking.Phone)
		}
	}
	return booking, nil
}

// Notify sends a templated message of the given kind to the booking's
// customer on staff request.
func (s *Service) Notify(ctx context.Context, id int64, kind string) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.notifs == nil {
		return nil
	}
	return s.notifs.Notify(ctx, kind, booking.ID, booking.CustomerName, booking.Phone)
}

// SoftDelete flags the booking for deletion. The row (and its paired
// reservation) is hard-removed by the purge sweep after the grace window.
func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.DeletedAt != nil {
		return nil
	}
	now := time.Now()
	return s.db.WithContext(ctx).Model(booking).Update("deleted_at", now).Error
}

// Restore clears the deletion flag while still inside the grace window.
func (s *Service) Restore(ctx context.Context, id int64) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.DeletedAt == nil {
		return ErrNotDeleted
	}
	return s.db.WithContext(ctx).Model(booking).Update("deleted_at", nil).Error
}

// PurgeExpired hard-deletes bookings soft-deleted longer than the grace
// window ago, together with their paired reservations and the reservations'
// dependent rows. Idempotent; concurrent runs tolerate rows already gone.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-purgeGrace)

	var expired []domain.Booking
	if err := s.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&expired).Error; err != nil {
		return 0, err
	}

	var purged int64
	for _, booking := range expired {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if booking.ReservationID != nil {
				resID := *booking.ReservationID
				if err := tx.Where("reservation_id = ?", resID).Delete(&domain.ReviewSubmission{}).Error; err != nil {
					return err
				}
				if err := tx.Where("reservation_id = ?", resID).Delete(&domain.PendingChange{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&domain.Reservation{}, resID).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&domain.Booking{}, booking.ID).Error
		})
		if err != nil {
			log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("purge failed for booking")
			continue
		}
		purged++
	}

	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("purged expired bookings")
	}
	return purged, nil
}

// AnonymizeExpired irreversibly masks PII on bookings older than the
// retention period. The paired reservation's ciphertext identity fields are
// blanked at the same time.
func (s *Service) AnonymizeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-retention)

	var expired []domain.Booking
	if err := s.db.WithContext(ctx).
		Where("created_at < ? AND anonymized = ?", cutoff, false).
		Find(&expired).Error; err != nil {
		return 0, err
	}

	var done int64
	for _, booking := range expired {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			updates := map[string]any{
				"customer_name": maskName(booking.CustomerName),
				"phone":         "",
				"anonymized":    true,
				"anonymized_at": now,
			}
			if err := tx.Model(&domain.Booking{}).Where("id = ?", booking.ID).
				Updates(updates).Error; err != nil {
				return err
			}
			if booking.ReservationID == nil {
				return nil
			}
			return tx.Model(&domain.Reservation{}).Where("id = ?", *booking.ReservationID).
				Updates(map[string]any{
					"customer_name": "",
					"groom_name":    "",
					"bride_name":    "",
					"phone":         "",
					"bride_phone":   "",
					"address":       "",
				}).Error
		})
		if err != nil {
			log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("anonymization failed for booking")
			continue
		}
		done++
	}

	if done > 0 {
		log.Info().Int64("anonymized", done).Msg("anonymized expired bookings")
	}
	return done, nil
}

// CreateDirect enters a booking without a customer submission. A synthetic
// reservation is created in the same transaction so every booking keeps a
// paired row.
func (s *Service) CreateDirect(ctx context.Context, req CreateDirectRequest) (*domain.Booking, error) {
	tier := domain.ProductTier(req.Tier)
	if !tier.Valid() {
		return nil, ErrValidation
	}
	weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
	if err != nil {
		return nil, ErrValidation
	}

	quote := pricing.Calculate(pricing.Input{
		Tier:      tier,
		TravelFee: travel.FeeFor(req.Region),
	})

	res := &domain.Reservation{
		CustomerName: s.cipher.Encrypt(req.CustomerName),
		Phone:        s.cipher.Encrypt(req.Phone),
		Tier:         tier,
		WeddingDate:  weddingDate,
		Region:       req.Region,
		Status:       domain.ReservationConfirmed,
	}
	booking := &domain.Booking{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		WeddingDate:  weddingDate,
		Status:       domain.BookingConfirmed,
	}
	pricing.ApplyQuote(quote, res, booking)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(res).Error; err != nil {
			return err
		}

		var product domain.Product
		err := tx.Where("tier = ?", tier).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			product = domain.Product{Tier: tier, Name: string(tier), Price: pricing.TierPrice(tier)}
			err = tx.Create(&product).Error
		}
		if err != nil {
			return err
		}

		booking.ProductID = product.ID
		booking.ReservationID = &res.ID
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
			Update("booking_id", booking.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func maskName(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[0]) + "**"
}
