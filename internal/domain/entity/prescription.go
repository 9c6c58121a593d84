package entity

import "time"

// PrescriptionStatus is the review state of an uploaded prescription.
type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "pending"
	PrescriptionVerified PrescriptionStatus = "verified"
	PrescriptionRejected PrescriptionStatus = "rejected"
)

var prescriptionTransitions = transitionTable[PrescriptionStatus]{
	PrescriptionPending: {PrescriptionVerified, PrescriptionRejected},
}

// CanTransitionTo reports whether a prescription in s may move to next.
func (s PrescriptionStatus) CanTransitionTo(next PrescriptionStatus) bool {
	return prescriptionTransitions.allows(s, next)
}

// IsDecision reports whether s is an outcome a pharmacist can record.
func (s PrescriptionStatus) IsDecision() bool {
	return s == PrescriptionVerified || s == PrescriptionRejected
}

// Prescription is a customer-uploaded document awaiting pharmacist review.
type Prescription struct {
	ID          int64              `json:"id"`
	CustomerID  int64              `json:"customer_id"`
	FileAssetID int64              `json:"file_asset_id"`
	Status      PrescriptionStatus `json:"status"`
	VerifiedBy  *int64             `json:"verified_by,omitempty"`
	VerifiedAt  *time.Time         `json:"verified_at,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	UploadedAt  time.Time          `json:"uploaded_at"`
}
