package pendingedit

// EditRequest carries the customer's desired values. Nil fields are not part
// of the edit; a non-nil field is compared against the live value and staged
// only if it differs.
type EditRequest struct {
	CustomerName *string `json:"customer_name"`
	GroomName    *string `json:"groom_name"`
	BrideName    *string `json:"bride_name"`
	Phone        *string `json:"phone"`
	BridePhone   *string `json:"bride_phone"`
	Address      *string `json:"address"`
	WeddingVenue *string `json:"wedding_venue"`
}

// ResolveRequest is the staff decision on a staged change.
type ResolveRequest struct {
	Action string `json:"action" binding:"required,oneof=applied discarded"`
}
