package models

import "iea/src/types"

// Ticket is the durable proof of registration for one attendee. A row only
// ever exists for a completed payment, so `used` is unreachable before
// `status` is paid.
type Ticket struct {
	ID uint `gorm:"primarykey" json:"-"`

	// Assigned once at issuance, embedded in the QR code.
	TicketID string `gorm:"uniqueIndex" json:"ticketId"`
	// Payment gateway reference. The unique index is the idempotency
	// guard: a second insert for the same reference fails instead of
	// racing past the lookup.
	TransactionID string `gorm:"uniqueIndex" json:"transactionId"`

	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Institution string `json:"institution,omitempty"`
	Course      string `json:"course,omitempty"`

	Amount   uint               `json:"amount,omitempty"`
	Currency string             `json:"currency,omitempty"`
	Status   types.TicketStatus `gorm:"default:'pending'" json:"status"`
	Used     bool               `gorm:"default:false" json:"used"`

	// Data URI of the rendered QR image, generated once and replayed so
	// the ticket page and email always show the same code.
	QRCode string `json:"qrCode"`

	types.Timestamps
}
