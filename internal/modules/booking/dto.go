package booking

// ListQuery filters the staff booking list.
type ListQuery struct {
	Status         string `form:"status"`
	Query          string `form:"q"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=50"`
}

// CreateDirectRequest is a staff-entered booking (manual entry or import).
// A synthetic reservation is created alongside to keep the pairing invariant.
type CreateDirectRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Tier         string `json:"tier" binding:"required,tier"`
	WeddingDate  string `json:"wedding_date" binding:"required"` // 2006-01-02
	Region       string `json:"region"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type NotifyRequest struct {
	Kind string `json:"kind" binding:"required,oneof=contract video post_wedding"`
}
