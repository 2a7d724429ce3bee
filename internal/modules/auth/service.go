// Package auth issues sessions: staff log in with email and password,
// customers open a mypage session scoped to one reservation.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/pkg/jwt"
)

// ReservationAuthenticator checks a reservation's mypage password.
type ReservationAuthenticator interface {
	Authenticate(ctx context.Context, reservationID int64, password string) (*domain.Reservation, error)
}

type Service struct {
	db           *gorm.DB
	staffJWT     *jwt.Service
	customerJWT  *jwt.Service
	reservations ReservationAuthenticator
}

func NewService(db *gorm.DB, staffJWT, customerJWT *jwt.Service, reservations ReservationAuthenticator) *Service {
	return &Service{
		db:           db,
		staffJWT:     staffJWT,
		customerJWT:  customerJWT,
		reservations: reservations,
	}
}

// StaffLogin checks the account password and issues a staff token. Lookup
// failure and password mismatch are indistinguishable to the caller.
func (s *Service) StaffLogin(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	var staff domain.Staff
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.staffJWT.GenerateStaffToken(staff.ID, string(staff.Role))
	if err != nil {
		return "", nil, err
	}
	return token, &staff, nil
}

// CustomerLogin issues a short-lived token scoped to one reservation.
func (s *Service) CustomerLogin(ctx context.Context, reservationID int64, password string) (string, error) {
	if _, err := s.reservations.Authenticate(ctx, reservationID, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.customerJWT.GenerateCustomerToken(reservationID)
}
