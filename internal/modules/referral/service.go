// Package referral generates, validates and applies partner codes. A code is
// tied to one confirmed booking; redeeming it discounts both sides of the
// referral in a single transaction.
package referral

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/modules/pricing"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AssignCodeTx generates a unique partner code for a booking that first
// requests referral participation and stores it on the booking and its
// paired reservation. Generation happens once; callers must not regenerate
// a code that was cleared later.
func AssignCodeTx(tx *gorm.DB, b *domain.Booking, r *domain.Reservation, name string) error {
	code, err := uniqueCode(tx, BuildCode(b.WeddingDate, name))
	if err != nil {
		return err
	}

	b.PartnerCode = &code
	if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
		Update("partner_code", code).Error; err != nil {
		return err
	}

	if r != nil {
		r.ReferralCode = &code
		if err := tx.Model(&domain.Reservation{}).Where("id = ?", r.ID).
			Update("referral_code", code).Error; err != nil {
			return err
		}
	}
	return nil
}

// Validate resolves a partner code to its host booking. The host must be
// live (not cancelled, not soft-deleted, not anonymized) and its wedding
// date must not be in the past: an expired host cannot be referred into.
func (s *Service) Validate(ctx context.Context, code string) (*domain.Booking, error) {
	return validateTx(s.db.WithContext(ctx), code)
}

func validateTx(tx *gorm.DB, code string) (*domain.Booking, error) {
	var host domain.Booking
	err := tx.Where("partner_code = ?", code).First(&host).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if !host.Live() {
		return nil, ErrInvalidCode
	}

	today := time.Now().Truncate(24 * time.Hour)
	if host.WeddingDate.Before(today) {
		return nil, ErrExpiredHost
	}
	return &host, nil
}

// CreditReferrerTx adds one referral unit to the host booking of code and to
// its paired reservation, recomputing both final balances. The increment is
// a SQL expression, not read-modify-write, so two concurrent referees
// crediting the same referrer always sum to two units.
//
// The caller is responsible for having already priced the referee side; both
// sides of the referral must commit or roll back together, so this only runs
// inside the caller's transaction.
func CreditReferrerTx(tx *gorm.DB, code string) error {
	host, err := validateTx(tx, code)
	if err != nil {
		return err
	}

	if err := tx.Model(&domain.Booking{}).Where("id = ?", host.ID).
		Update("referral_discount", gorm.Expr("referral_discount + ?", pricing.ReferralUnit)).Error; err != nil {
		return err
	}

	// Reload to recompute the balance from the committed-in-tx increment.
	var fresh domain.Booking
	if err := tx.First(&fresh, host.ID).Error; err != nil {
		return err
	}
	if err := tx.Model(&domain.Booking{}).Where("id = ?", fresh.ID).
		Update("final_balance", pricing.FinalBalanceForBooking(&fresh)).Error; err != nil {
		return err
	}

	if fresh.ReservationID == nil {
		return nil
	}

	if err := tx.Model(&domain.Reservation{}).Where("id = ?", *fresh.ReservationID).
		Update("referral_discount", gorm.Expr("referral_discount + ?", pricing.ReferralUnit)).Error; err != nil {
		return err
	}

	var res domain.Reservation
	if err := tx.First(&res, *fresh.ReservationID).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
		Update("final_balance", pricing.FinalBalanceForReservation(&res)).Error
}

// ClearRedeemedCodeTx nulls the stored code when the customer unchecks the
// referral flag. The code is not kept around: re-checking the flag later
// does not restore it.
func ClearRedeemedCodeTx(tx *gorm.DB, b *domain.Booking, r *domain.Reservation) error {
	if b != nil {
		b.ReferredBy = nil
		if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
			Update("referred_by", nil).Error; err != nil {
			return err
		}
	}
	if r != nil {
		r.ReferredBy = nil
		if err := tx.Model(&domain.Reservation{}).Where("id = ?", r.ID).
			Update("referred_by", nil).Error; err != nil {
			return err
		}
	}
	return nil
}
