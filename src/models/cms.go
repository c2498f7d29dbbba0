package models

import "iea/src/types"

// CMS records managed from the admin console. Each carries an opaque
// ResourceID used in public payloads and delete requests, and at most one
// uploaded asset URL.

type Sponsor struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	ResourceID string `gorm:"uniqueIndex" json:"id"`
	Name       string `json:"name"`
	LogoURL    string `json:"logoUrl"`

	types.Timestamps
}

type Speaker struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	ResourceID string `gorm:"uniqueIndex" json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ImageURL   string `json:"imageUrl"`

	types.Timestamps
}

type TeamMember struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	ResourceID string `gorm:"uniqueIndex" json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Bio        string `json:"bio"`
	ImageURL   string `json:"imageUrl"`

	types.Timestamps
}

type Testimonial struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	ResourceID string `gorm:"uniqueIndex" json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Quote      string `json:"quote"`
	ImageURL   string `json:"imageUrl"`

	types.Timestamps
}

type Story struct {
	ID         uint             `gorm:"primarykey" json:"-"`
	ResourceID string           `gorm:"uniqueIndex" json:"id"`
	Title      string           `json:"title"`
	Categories types.StringList `gorm:"type:jsonb" json:"categories"`
	Excerpt    string           `json:"excerpt"`
	Date       string           `json:"date"`
	LogoURL    string           `json:"logoUrl"`

	types.Timestamps
}

type Highlight struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	ResourceID string `gorm:"uniqueIndex" json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`

	types.Timestamps
}
