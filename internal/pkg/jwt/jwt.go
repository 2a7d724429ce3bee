package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Party kinds carried in tokens. Staff tokens identify a staff account;
// customer tokens identify one reservation the customer authenticated for.
const (
	PartyStaff    = "staff"
	PartyCustomer = "customer"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	PartyID int64  `json:"party_id"`
	Party   string `json:"party"`
	Role    string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateStaffToken issues a token for a staff account.
func (s *Service) GenerateStaffToken(staffID int64, role string) (string, error) {
	return s.generate(staffID, PartyStaff, role)
}

// GenerateCustomerToken issues a token scoped to a single reservation.
func (s *Service) GenerateCustomerToken(reservationID int64) (string, error) {
	return s.generate(reservationID, PartyCustomer, "")
}

func (s *Service) generate(partyID int64, party, role string) (string, error) {
	claims := Claims{
		PartyID: partyID,
		Party:   party,
		Role:    role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
