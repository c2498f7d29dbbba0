package models

import "iea/src/types"

// Message is a contact-form submission. Append-only.
type Message struct {
	ID      uint   `gorm:"primarykey" json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`

	types.Timestamps
}
