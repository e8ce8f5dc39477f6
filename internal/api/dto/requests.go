package dto

// CreateWeekRequest creates a new reconciliation week.
type CreateWeekRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// UpdateWeekRequest changes a week's lifecycle status. Closing is a
// dedicated endpoint and is rejected here.
type UpdateWeekRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReconcileRequest triggers a reconciliation run. FeePct optionally
// overrides the configured acquirer fee rate for this run only.
type ReconcileRequest struct {
	FeePct *float64 `json:"feePct,omitempty"`
}

// CreateExceptionRequest declares an adjustment for a week.
type CreateExceptionRequest struct {
	Type           string   `json:"type" binding:"required"`
	ReservationID  string   `json:"reservationId,omitempty"`
	GuestName      string   `json:"guestName,omitempty"`
	OriginalAmount *float64 `json:"originalAmount,omitempty"`
	FinalAmount    *float64 `json:"finalAmount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	DiscountPct    *float64 `json:"discountPct,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	Source         string   `json:"source,omitempty"`
	SourceRaw      string   `json:"sourceRaw,omitempty"`
}

// UpdateExceptionRequest partially updates an exception. Nil fields
// are left untouched.
type UpdateExceptionRequest struct {
	Type           *string  `json:"type,omitempty"`
	ReservationID  *string  `json:"reservationId,omitempty"`
	GuestName      *string  `json:"guestName,omitempty"`
	OriginalAmount *float64 `json:"originalAmount,omitempty"`
	FinalAmount    *float64 `json:"finalAmount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	DiscountPct    *float64 `json:"discountPct,omitempty"`
	Reason         *string  `json:"reason,omitempty"`
	SourceRaw      *string  `json:"sourceRaw,omitempty"`
}

// ParseExceptionRequest submits free-form text (typically forwarded
// WhatsApp) for extraction into a structured exception draft.
type ParseExceptionRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateMatchRequest partially updates a match verdict. Nil fields are
// left untouched.
type UpdateMatchRequest struct {
	Status    *string `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	AdminNote *string `json:"adminNote,omitempty"`
}
