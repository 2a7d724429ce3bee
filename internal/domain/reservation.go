package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is the customer-facing record of one wedding-video engagement.
// Identity fields (names, phones, address) hold ciphertext produced by the
// field cipher; they are decrypted at the service layer, never in queries.
type Reservation struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	// Identity (ciphertext at rest).
	CustomerName string `json:"customer_name" gorm:"size:512;not null"`
	GroomName    string `json:"groom_name" gorm:"size:512"`
	BrideName    string `json:"bride_name" gorm:"size:512"`
	Phone        string `json:"phone" gorm:"size:512;not null"`
	BridePhone   string `json:"bride_phone" gorm:"size:512"`
	Address      string `json:"address" gorm:"size:1024"`

	// Plaintext operational fields.
	Nickname     string `json:"nickname" gorm:"size:100"`
	PasswordHash string `json:"-" gorm:"size:100"`

	Tier         ProductTier `json:"tier" gorm:"size:20;not null"`
	WeddingDate  time.Time   `json:"wedding_date" gorm:"not null;index"`
	WeddingVenue string      `json:"wedding_venue" gorm:"size:200"`
	Region       string      `json:"region" gorm:"size:100"`
	MainCompany  string      `json:"main_company" gorm:"size:200"`

	// Add-on flags. Each contributes a fixed increment to the list price.
	MakeupShoot     bool `json:"makeup_shoot"`
	PaebaekShoot    bool `json:"paebaek_shoot"`
	ReceptionShoot  bool `json:"reception_shoot"`
	UsbOption       bool `json:"usb_option"`
	GimbalOption    bool `json:"gimbal_option"`
	DroneOption     bool `json:"drone_option"`
	HighlightOption bool `json:"highlight_option"`

	// Discount flags. The discount amount column is always recomputed from
	// these, never edited on its own.
	NewYearEvent    bool `json:"new_year_event"`
	CoupleEvent     bool `json:"couple_event"`
	ReviewEvent     bool `json:"review_event"`
	ReviewBlogEvent bool `json:"review_blog_event"`

	// Benefit unlocked by an accepted review on the BASIC tier.
	OriginalFootage bool `json:"original_footage"`

	// Money (KRW).
	TotalAmount      int64 `json:"total_amount" gorm:"not null;default:0"`
	TravelFee        int64 `json:"travel_fee" gorm:"not null;default:0"`
	DepositAmount    int64 `json:"deposit_amount" gorm:"not null;default:0"`
	DiscountAmount   int64 `json:"discount_amount" gorm:"not null;default:0"`
	ReferralDiscount int64 `json:"referral_discount" gorm:"not null;default:0"`
	ReviewDiscount   int64 `json:"review_discount" gorm:"not null;default:0"`
	FinalBalance     int64 `json:"final_balance" gorm:"not null;default:0"`

	// Referral linkage. ReferredBy is the partner code this reservation used;
	// ReferralCode is the code it issued to others.
	ReferredBy   *string `json:"referred_by,omitempty" gorm:"size:100"`
	ReferralCode *string `json:"referral_code,omitempty" gorm:"size:100"`

	BookingID *int64 `json:"booking_id,omitempty" gorm:"index"`

	Status    ReservationStatus `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }
