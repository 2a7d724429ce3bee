package review

import "weddingstudio/internal/domain"

type SubmitReviewRequest struct {
	URL     string `json:"url" binding:"required"`
	Purpose string `json:"purpose" binding:"required,oneof=booking shooting"`
}

type DecideReviewRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// StatusLabel maps a submission state to the label shown on the mypage list.
func StatusLabel(s domain.ReviewStatus) string {
	switch s {
	case domain.ReviewAutoApproved, domain.ReviewApproved:
		return "승인 완료"
	case domain.ReviewManual:
		return "확인 중"
	case domain.ReviewRejected:
		return "반려"
	default:
		return "대기 중"
	}
}

type submissionView struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	Purpose     string `json:"purpose"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Reason      string `json:"reason,omitempty"`
}

func toView(sub domain.ReviewSubmission) submissionView {
	return submissionView{
		ID:          sub.ID,
		URL:         sub.URL,
		Platform:    string(sub.Platform),
		Purpose:     string(sub.Purpose),
		Status:      string(sub.Status),
		StatusLabel: StatusLabel(sub.Status),
		Reason:      sub.RejectReason,
	}
}
