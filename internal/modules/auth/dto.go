package auth

type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerLoginRequest opens a mypage session for one reservation using the
// 4-digit password chosen at submission.
type CustomerLoginRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	Password      string `json:"password" binding:"required,len=4,numeric"`
}
