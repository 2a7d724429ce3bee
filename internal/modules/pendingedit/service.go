// Package pendingedit stages customer self-service edits as a diff awaiting
// staff approval. The staged record never mutates the reservation itself;
// staff read the diff, contact the customer if needed, and apply the change
// through the regular staff update path.
package pendingedit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/pkg/cipher"
)

type Service struct {
	db     *gorm.DB
	cipher *cipher.Cipher
}

func NewService(db *gorm.DB, c *cipher.Cipher) *Service {
	return &Service{db: db, cipher: c}
}

// Submit diffs the request against the live reservation on decrypted,
// normalized values. A zero diff is a success with no record. A non-empty
// diff creates the reservation's PENDING change or overwrites the existing
// one; there is never more than one PENDING row per reservation.
//
// The returned bool reports whether a change was staged.
func (s *Service) Submit(ctx context.Context, reservationID int64, req EditRequest) (bool, error) {
	var res domain.Reservation
	if err := s.db.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrValidation
		}
		return false, err
	}

	diff := s.buildDiff(&res, req)
	if len(diff) == 0 {
		return false, nil
	}

	payload, err := json.Marshal(diff)
	if err != nil {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.PendingChange
		err := tx.Where("reservation_id = ? AND status = ?", reservationID, domain.ChangePending).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Update("changes", json.RawMessage(payload)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&domain.PendingChange{
				ReservationID: reservationID,
				Changes:       payload,
				Status:        domain.ChangePending,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}

	log.Info().Int64("reservation_id", reservationID).Int("fields", len(diff)).
		Msg("staged pending change")
	return true, nil
}

// buildDiff compares each requested field with the current plaintext value.
// Identity fields go into the diff masked on both sides.
func (s *Service) buildDiff(res *domain.Reservation, req EditRequest) map[string]domain.FieldChange {
	diff := make(map[string]domain.FieldChange)

	name := func(field string, current string, want *string) {
		if want == nil {
			return
		}
		cur := s.cipher.Decrypt(current)
		if strings.TrimSpace(*want) == cur {
			return
		}
		diff[field] = domain.FieldChange{Old: maskName(cur), New: maskName(strings.TrimSpace(*want))}
	}
	phone := func(field string, current string, want *string) {
		if want == nil {
			return
		}
		cur := s.cipher.Decrypt(current)
		if digitsOnly(*want) == digitsOnly(cur) {
			return
		}
		diff[field] = domain.FieldChange{Old: maskPhone(cur), New: maskPhone(*want)}
	}

	name("customer_name", res.CustomerName, req.CustomerName)
	name("groom_name", res.GroomName, req.GroomName)
	name("bride_name", res.BrideName, req.BrideName)
	phone("phone", res.Phone, req.Phone)
	phone("bride_phone", res.BridePhone, req.BridePhone)

	if req.Address != nil {
		cur := s.cipher.Decrypt(res.Address)
		if want := strings.TrimSpace(*req.Address); want != cur {
			diff["address"] = domain.FieldChange{Old: maskTail(cur), New: maskTail(want)}
		}
	}
	if req.WeddingVenue != nil {
		if want := strings.TrimSpace(*req.WeddingVenue); want != res.WeddingVenue {
			diff["wedding_venue"] = domain.FieldChange{Old: res.WeddingVenue, New: want}
		}
	}
	return diff
}

// GetPending returns the reservation's open change, if any.
func (s *Service) GetPending(ctx context.Context, reservationID int64) (*domain.PendingChange, error) {
	var change domain.PendingChange
	err := s.db.WithContext(ctx).
		Where("reservation_id = ? AND status = ?", reservationID, domain.ChangePending).
		First(&change).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &change, nil
}

// ListPending returns open changes for the staff queue, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]domain.PendingChange, error) {
	var changes []domain.PendingChange
	err := s.db.WithContext(ctx).
		Where("status = ?", domain.ChangePending).
		Order("created_at ASC").
		Find(&changes).Error
	return changes, err
}

// Resolve closes a staged change as applied or discarded. Applying here only
// records the decision; the actual reservation mutation happens through the
// staff update endpoint.
func (s *Service) Resolve(ctx context.Context, changeID int64, status domain.PendingChangeStatus) (*domain.PendingChange, error) {
	if status != domain.ChangeApplied && status != domain.ChangeDiscarded {
		return nil, ErrValidation
	}

	var change domain.PendingChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&change, changeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if change.Status != domain.ChangePending {
			return ErrResolved
		}
		change.Status = status
		return tx.Save(&change).Error
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// maskPhone keeps the carrier prefix and the last four digits: 010-****-5678.
func maskPhone(s string) string {
	d := digitsOnly(s)
	if len(d) < 8 {
		return strings.Repeat("*", len(d))
	}
	return d[:3] + "-****-" + d[len(d)-4:]
}

// maskName keeps the first character: 김**.
func maskName(s string) string {
	runes := []rune(s)
	if len(runes) <= 1 {
		return s
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// maskTail keeps a leading fragment of an address, enough for staff to
// recognize the district without exposing the full street address.
func maskTail(s string) string {
	runes := []rune(s)
	if len(runes) <= 6 {
		return s
	}
	return string(runes[:6]) + "…"
}
