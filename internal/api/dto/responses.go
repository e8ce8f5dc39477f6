package dto

import (
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/report"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
)

// WeekResponse is one week plus its listing metrics.
type WeekResponse struct {
	Week    *week.Week      `json:"week"`
	Metrics *report.Metrics `json:"metrics,omitempty"`
}

// WeekListResponse wraps the weeks listing.
type WeekListResponse struct {
	Weeks []WeekResponse `json:"weeks"`
}

// MatchListResponse wraps a week's match records.
type MatchListResponse struct {
	Matches []recon.MatchRecord `json:"matches"`
}

// ExceptionListResponse wraps a week's exceptions.
type ExceptionListResponse struct {
	Exceptions []recon.ExceptionRecord `json:"exceptions"`
}

// ImportResponse summarizes an accepted CSV import. Preview carries the
// first few parsed rows so the caller can eyeball the column mapping.
type ImportResponse struct {
	Count       int         `json:"count"`
	TotalAmount float64     `json:"totalAmount"`
	Preview     interface{} `json:"preview"`
}

// ParsedExceptionResponse is the draft extracted from free-form text.
// Confidence is the fraction of expected fields the parser recognized.
type ParsedExceptionResponse struct {
	Exception  recon.ExceptionRecord `json:"exception"`
	Confidence float64               `json:"confidence"`
}

// ReportResponse is the weekly report payload with its week header.
type ReportResponse struct {
	Week   *week.Week     `json:"week"`
	Report *report.Weekly `json:"report"`
}
