package domain

import "time"

type ReviewStatus string

const (
	ReviewPending      ReviewStatus = "PENDING"
	ReviewAutoApproved ReviewStatus = "AUTO_APPROVED"
	ReviewManual       ReviewStatus = "MANUAL_REVIEW"
	ReviewApproved     ReviewStatus = "APPROVED"
	ReviewRejected     ReviewStatus = "REJECTED"
)

// Accepted reports whether the submission counts toward review benefits.
// AUTO_APPROVED and APPROVED are both terminal-accepted.
func (s ReviewStatus) Accepted() bool {
	return s == ReviewAutoApproved || s == ReviewApproved
}

type ReviewPlatform string

const (
	PlatformNaverBlog ReviewPlatform = "NAVER_BLOG"
	PlatformNaverCafe ReviewPlatform = "NAVER_CAFE"
	PlatformInstagram ReviewPlatform = "INSTAGRAM"
	PlatformEtc       ReviewPlatform = "ETC"
)

type ReviewPurpose string

const (
	ReviewForBooking  ReviewPurpose = "booking"
	ReviewForShooting ReviewPurpose = "shooting"
)

// ReviewSubmission is one externally-hosted review URL submitted against a
// reservation. NormalizedURL is used for duplicate detection so cosmetic URL
// variants of an already-accepted review cannot be resubmitted.
type ReviewSubmission struct {
	ID            int64 `json:"id" gorm:"primaryKey"`
	ReservationID int64 `json:"reservation_id" gorm:"not null;index"`

	URL           string         `json:"url" gorm:"size:1024;not null"`
	NormalizedURL string         `json:"-" gorm:"size:1024;not null;index"`
	Platform      ReviewPlatform `json:"platform" gorm:"size:30;not null"`
	Purpose       ReviewPurpose  `json:"purpose" gorm:"size:20;not null"`

	TitleMatched  bool `json:"title_matched"`
	LengthMatched bool `json:"length_matched"`
	CharCount     int  `json:"char_count"`

	Status       ReviewStatus `json:"status" gorm:"size:20;not null;default:PENDING"`
	RejectReason string       `json:"reject_reason,omitempty" gorm:"size:500"`

	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (ReviewSubmission) TableName() string { return "review_submissions" }
