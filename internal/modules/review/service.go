// Package review runs the review-incentive state machine: submitted review
// URLs are verified, tracked through approval, and unlock benefits on the
// owning reservation once enough of them are accepted.
package review

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/modules/pricing"
)

type Service struct {
	db      *gorm.DB
	scraper Scraper
}

func NewService(db *gorm.DB, scraper Scraper) *Service {
	return &Service{db: db, scraper: scraper}
}

// Submit verifies and records one review URL for a reservation. Cap and
// duplicate violations reject the submission outright; it never enters the
// state machine. The returned submission is PENDING, AUTO_APPROVED or
// MANUAL_REVIEW.
func (s *Service) Submit(ctx context.Context, reservationID int64, rawURL string, purpose domain.ReviewPurpose) (*domain.ReviewSubmission, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	if purpose != domain.ReviewForBooking && purpose != domain.ReviewForShooting {
		return nil, ErrInvalidURL
	}

	var res domain.Reservation
	if err := s.db.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	platform := DetectPlatform(rawURL)
	normalized := NormalizeURL(rawURL)

	sub := &domain.ReviewSubmission{
		ReservationID: reservationID,
		URL:           strings.TrimSpace(rawURL),
		NormalizedURL: normalized,
		Platform:      platform,
		Purpose:       purpose,
		Status:        domain.ReviewPending,
	}

	// Verification happens outside the transaction: scraping is slow and
	// has no transactional needs. Cap checks re-run inside.
	if autoVerifiable(platform) {
		page, err := s.scraper.Fetch(ctx, rawURL)
		if err != nil {
			log.Warn().Err(err).Str("url", rawURL).Msg("review: scrape failed, routing to manual review")
			sub.Status = domain.ReviewManual
		} else {
			result := Verify(page)
			sub.TitleMatched = result.TitleMatched
			sub.LengthMatched = result.LengthMatched
			sub.CharCount = result.CharCount
			if result.TitleMatched && result.LengthMatched {
				sub.Status = domain.ReviewAutoApproved
				now := time.Now()
				sub.DecidedAt = &now
			} else {
				sub.Status = domain.ReviewManual
			}
		}
	} else {
		// Unscrapable platforms always go to a human, whatever the content.
		sub.Status = domain.ReviewManual
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCapsTx(tx, &res, sub); err != nil {
			return err
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if sub.Status.Accepted() {
			return recomputeBenefitTx(tx, reservationID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// checkCapsTx enforces the duplicate, per-type/per-tier and per-platform
// limits inside the submission transaction.
func checkCapsTx(tx *gorm.DB, res *domain.Reservation, sub *domain.ReviewSubmission) error {
	var dup int64
	err := tx.Model(&domain.ReviewSubmission{}).
		Where("reservation_id = ? AND normalized_url = ? AND status IN ?",
			res.ID, sub.NormalizedURL, acceptedStatuses()).
		Count(&dup).Error
	if err != nil {
		return err
	}
	if dup > 0 {
		return ErrDuplicateURL
	}

	var live int64
	err = tx.Model(&domain.ReviewSubmission{}).
		Where("reservation_id = ? AND purpose = ? AND status <> ?",
			res.ID, sub.Purpose, domain.ReviewRejected).
		Count(&live).Error
	if err != nil {
		return err
	}
	if int(live) >= submissionCap(sub.Purpose, res.Tier) {
		return ErrCapExceeded
	}

	if sub.Purpose == domain.ReviewForShooting {
		var samePlatform int64
		err = tx.Model(&domain.ReviewSubmission{}).
			Where("reservation_id = ? AND purpose = ? AND platform = ? AND status <> ?",
				res.ID, sub.Purpose, sub.Platform, domain.ReviewRejected).
			Count(&samePlatform).Error
		if err != nil {
			return err
		}
		if samePlatform > 0 {
			return ErrPlatformCapExceeded
		}
	}
	return nil
}

// Decide is the staff action on a submission. PENDING and MANUAL_REVIEW
// transition to APPROVED or REJECTED; an accepted submission may still be
// rejected later, which takes its benefit back through recomputation.
func (s *Service) Decide(ctx context.Context, submissionID int64, approve bool, reason string) (*domain.ReviewSubmission, error) {
	var sub domain.ReviewSubmission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		switch sub.Status {
		case domain.ReviewPending, domain.ReviewManual:
		case domain.ReviewAutoApproved, domain.ReviewApproved:
			if approve {
				return ErrAlreadyDecided
			}
			// Reversal path: rejection of a previously accepted review.
		default:
			return ErrAlreadyDecided
		}

		now := time.Now()
		sub.DecidedAt = &now
		if approve {
			sub.Status = domain.ReviewApproved
			sub.RejectReason = ""
		} else {
			sub.Status = domain.ReviewRejected
			sub.RejectReason = reason
		}

		if err := tx.Model(&domain.ReviewSubmission{}).Where("id = ?", sub.ID).
			Updates(map[string]any{
				"status":        sub.Status,
				"reject_reason": sub.RejectReason,
				"decided_at":    sub.DecidedAt,
			}).Error; err != nil {
			return err
		}

		return recomputeBenefitTx(tx, sub.ReservationID)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Cancel lets the customer withdraw a submission that has not been decided
// yet. The row is removed and the reservation's benefit recomputed, so a
// benefit granted by this submission never outlives it.
func (s *Service) Cancel(ctx context.Context, reservationID, submissionID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub domain.ReviewSubmission
		if err := tx.First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.ReservationID != reservationID {
			return ErrForbidden
		}
		if sub.Status != domain.ReviewPending && sub.Status != domain.ReviewManual {
			return ErrNotCancellable
		}

		if err := tx.Delete(&domain.ReviewSubmission{}, sub.ID).Error; err != nil {
			return err
		}
		return recomputeBenefitTx(tx, reservationID)
	})
}

// ListByReservation returns a reservation's submissions, newest first.
func (s *Service) ListByReservation(ctx context.Context, reservationID int64) ([]domain.ReviewSubmission, error) {
	var subs []domain.ReviewSubmission
	err := s.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}

// ListByStatus returns submissions in a given state for the admin queue.
func (s *Service) ListByStatus(ctx context.Context, status domain.ReviewStatus, limit, offset int) ([]domain.ReviewSubmission, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var subs []domain.ReviewSubmission
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at asc").
		Limit(limit).Offset(offset).
		Find(&subs).Error
	return subs, err
}

// recomputeBenefitTx re-derives the review benefit of a reservation from its
// current accepted submissions. It runs inside the same transaction as the
// state change that triggered it: the accepted count and the current
// discount are read under the same snapshot, so the discount is applied
// exactly once and reversed when acceptances disappear.
func recomputeBenefitTx(tx *gorm.DB, reservationID int64) error {
	var res domain.Reservation
	if err := tx.First(&res, reservationID).Error; err != nil {
		return err
	}

	var accepted int64
	err := tx.Model(&domain.ReviewSubmission{}).
		Where("reservation_id = ? AND status IN ?", reservationID, acceptedStatuses()).
		Count(&accepted).Error
	if err != nil {
		return err
	}

	// BASIC unlocks the original-footage benefit on the first accepted
	// review; there is no price change.
	if res.Tier == domain.TierBasic {
		unlocked := accepted >= 1
		if unlocked == res.OriginalFootage {
			return nil
		}
		return tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
			Update("original_footage", unlocked).Error
	}

	var target int64
	if accepted >= pricing.ReviewCountThreshold {
		target = pricing.ReviewDiscountValue
	}
	if res.ReviewDiscount == target {
		return nil
	}

	res.ReviewDiscount = target
	res.ReviewEvent = target > 0
	if err := tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
		Updates(map[string]any{
			"review_discount": target,
			"review_event":    target > 0,
			"final_balance":   pricing.FinalBalanceForReservation(&res),
		}).Error; err != nil {
		return err
	}

	if res.BookingID == nil {
		return nil
	}

	var b domain.Booking
	if err := tx.First(&b, *res.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	b.ReviewDiscount = target
	return tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
		Updates(map[string]any{
			"review_discount": target,
			"final_balance":   pricing.FinalBalanceForBooking(&b),
		}).Error
}

func acceptedStatuses() []domain.ReviewStatus {
	return []domain.ReviewStatus{domain.ReviewAutoApproved, domain.ReviewApproved}
}
