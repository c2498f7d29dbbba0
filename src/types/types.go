package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type JSONBArray []any

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}

// StringList is stored as a JSON array in a single column.
type StringList []string

func (a StringList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringList) Scan(value any) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}

// Postgres hands jsonb columns over as []byte, SQLite as string.
func jsonbBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	default:
		return nil, errors.New("unsupported column type for JSON value")
	}
}

type TicketStatus string

const (
	TICKET_PENDING TicketStatus = "pending"
	TICKET_PAID    TicketStatus = "paid"
)

type InitiatePaymentRequestBody struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
	Phone       string `json:"phone" binding:"required"`
	Method      string `json:"method" binding:"required,mobilemoney"`
}

type WebhookMetadata struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
}

type WebhookRequestBody struct {
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Metadata  WebhookMetadata `json:"metadata"`
}

type CreateMessageRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type AdminLoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateRegistrationConfigRequestBody struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	SuccessMessage string `json:"successMessage"`
	HeroImage      string `json:"heroImage"`
}

type TicketURIParams struct {
	TicketID string `uri:"ticketId" binding:"required"`
}

type ResourceURIParams struct {
	ID string `uri:"id" binding:"required"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
