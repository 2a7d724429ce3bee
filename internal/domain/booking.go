package domain

import "time"

type BookingStatus string

const (
	BookingPending          BookingStatus = "PENDING"
	BookingConfirmed        BookingStatus = "CONFIRMED"
	BookingDepositCompleted BookingStatus = "DEPOSIT_COMPLETED"
	BookingDelivered        BookingStatus = "DELIVERED"
	BookingCancelled        BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingDepositCompleted,
		BookingDelivered, BookingCancelled:
		return true
	}
	return false
}

// Booking is the staff-operational mirror of a Reservation, linked one-to-one
// via reservation_id / booking_id cross-pointers and created in the same
// transaction. Contact fields are plaintext here for operational use.
// Booking is the system of record for staff status transitions; its money
// columns are derived by the same formula as the Reservation's and the two
// must agree whenever both exist.
type Booking struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	ReservationID *int64 `json:"reservation_id,omitempty" gorm:"index"`

	CustomerName string `json:"customer_name" gorm:"size:100;not null"`
	Phone        string `json:"phone" gorm:"size:30"`

	ProductID   int64     `json:"product_id" gorm:"not null"`
	WeddingDate time.Time `json:"wedding_date" gorm:"not null;index"`

	// Money (KRW).
	ListPrice        int64 `json:"list_price" gorm:"not null;default:0"`
	TravelFee        int64 `json:"travel_fee" gorm:"not null;default:0"`
	DepositAmount    int64 `json:"deposit_amount" gorm:"not null;default:0"`
	EventDiscount    int64 `json:"event_discount" gorm:"not null;default:0"`
	ReferralDiscount int64 `json:"referral_discount" gorm:"not null;default:0"`
	ReviewDiscount   int64 `json:"review_discount" gorm:"not null;default:0"`
	FinalBalance     int64 `json:"final_balance" gorm:"not null;default:0"`

	Status BookingStatus `json:"status" gorm:"size:30;not null;default:PENDING"`

	// PartnerCode is the referral code this booking issued; ReferredBy is the
	// code it redeemed at creation, if any.
	PartnerCode *string `json:"partner_code,omitempty" gorm:"uniqueIndex;size:100"`
	ReferredBy  *string `json:"referred_by,omitempty" gorm:"size:100"`

	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Anonymized   bool       `json:"anonymized"`
	AnonymizedAt *time.Time `json:"anonymized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Booking) TableName() string { return "bookings" }

// Live reports whether the booking can still participate in operational
// flows (referral validation, notifications).
func (b *Booking) Live() bool {
	return b.DeletedAt == nil && !b.Anonymized && b.Status != BookingCancelled
}
