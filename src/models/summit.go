package models

import "iea/src/types"

// SummitInfo and RegistrationConfig are singleton documents: the collection
// holds at most one row, replaced wholesale on every save.

type SummitInfo struct {
	ID          uint             `gorm:"primarykey" json:"-"`
	Headline    string           `json:"headline"`
	SubHeadline string           `json:"subHeadline"`
	Description string           `json:"description"`
	DateText    string           `json:"dateText"`
	TargetDate  string           `json:"targetDate"`
	Location    string           `json:"location"`
	HeroImage   string           `json:"heroImage"`
	Stats       types.JSONBArray `gorm:"type:jsonb" json:"stats"`

	types.Timestamps
}

type RegistrationConfig struct {
	ID             uint   `gorm:"primarykey" json:"-"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SuccessMessage string `json:"successMessage"`
	HeroImage      string `json:"heroImage"`

	types.Timestamps
}
