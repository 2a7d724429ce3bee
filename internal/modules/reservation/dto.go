package reservation

import "weddingstudio/internal/modules/pricing"

type CreateReservationRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	GroomName    string `json:"groom_name"`
	BrideName    string `json:"bride_name"`
	Phone        string `json:"phone" binding:"required"`
	BridePhone   string `json:"bride_phone"`
	Address      string `json:"address"`
	Nickname     string `json:"nickname"`
	Password     string `json:"password" binding:"required,len=4,numeric"`

	Tier         string `json:"tier" binding:"required,tier"`
	WeddingDate  string `json:"wedding_date" binding:"required"` // 2006-01-02
	WeddingVenue string `json:"wedding_venue"`
	Region       string `json:"region"`
	MainCompany  string `json:"main_company"`

	MakeupShoot     bool `json:"makeup_shoot"`
	PaebaekShoot    bool `json:"paebaek_shoot"`
	ReceptionShoot  bool `json:"reception_shoot"`
	UsbOption       bool `json:"usb_option"`
	GimbalOption    bool `json:"gimbal_option"`
	DroneOption     bool `json:"drone_option"`
	HighlightOption bool `json:"highlight_option"`

	NewYearEvent    bool `json:"new_year_event"`
	CoupleEvent     bool `json:"couple_event"`
	ReviewBlogEvent bool `json:"review_blog_event"`

	// ReferredBy is a partner code issued by another booking, if any.
	ReferredBy string `json:"referred_by"`
}

// StaffUpdateRequest patches a reservation/booking pair. Nil fields are left
// untouched; any priced field change re-runs the calculator on both records.
type StaffUpdateRequest struct {
	Tier         *string `json:"tier"`
	WeddingDate  *string `json:"wedding_date"`
	WeddingVenue *string `json:"wedding_venue"`
	Region       *string `json:"region"`
	MainCompany  *string `json:"main_company"`

	MakeupShoot     *bool `json:"makeup_shoot"`
	PaebaekShoot    *bool `json:"paebaek_shoot"`
	ReceptionShoot  *bool `json:"reception_shoot"`
	UsbOption       *bool `json:"usb_option"`
	GimbalOption    *bool `json:"gimbal_option"`
	DroneOption     *bool `json:"drone_option"`
	HighlightOption *bool `json:"highlight_option"`

	NewYearEvent    *bool `json:"new_year_event"`
	CoupleEvent     *bool `json:"couple_event"`
	ReviewBlogEvent *bool `json:"review_blog_event"`
}

// View is the decrypted customer-facing shape with the computed balance.
type View struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	GroomName    string `json:"groom_name,omitempty"`
	BrideName    string `json:"bride_name,omitempty"`
	Phone        string `json:"phone"`
	BridePhone   string `json:"bride_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Nickname     string `json:"nickname,omitempty"`

	Tier         string `json:"tier"`
	WeddingDate  string `json:"wedding_date"`
	WeddingVenue string `json:"wedding_venue,omitempty"`
	Region       string `json:"region,omitempty"`

	Status          string  `json:"status"`
	ReferralCode    *string `json:"referral_code,omitempty"`
	OriginalFootage bool    `json:"original_footage"`

	Quote pricing.Quote `json:"quote"`
}
