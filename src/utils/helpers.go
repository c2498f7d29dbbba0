package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"iea/src/config"
	"iea/src/db"
	"iea/src/models"
	"iea/src/types"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

// GenerateTicketQR renders the ticket id as a QR image and returns it as a
// data URI. Deterministic for a given id, so regenerating always yields the
// stored value.
func GenerateTicketQR(ticketId string) (string, error) {
	qrc, err := qrcode.New(ticketId)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		log.Printf("Could not encode qrcode for ticket [%s]: %s\n", ticketId, err.Error())
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encoded), nil
}

// IssueTicket creates the ticket record for a completed payment. The unique
// index on transaction_id makes the insert the idempotency barrier: a
// concurrent duplicate comes back as gorm.ErrDuplicatedKey, which callers
// treat as "already issued".
func IssueTicket(md *types.WebhookMetadata, reference string) (*models.Ticket, error) {
	ticketId := uuid.NewString()
	qrCode, err := GenerateTicketQR(ticketId)
	if err != nil {
		return nil, err
	}
	ticket := models.Ticket{
		TicketID:      ticketId,
		TransactionID: reference,
		FullName:      md.FullName,
		Email:         md.Email,
		Institution:   md.Institution,
		Course:        md.Course,
		Amount:        config.TicketPrice(),
		Currency:      config.TicketCurrency,
		Status:        types.TICKET_PAID,
		QRCode:        qrCode,
	}
	dbi := db.GetDb()
	if err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AssetKey builds a stable, collision-free object key for an uploaded file.
func AssetKey(name string, filename string) string {
	ext := path.Ext(filename)
	base := slug.Make(name)
	if base == "" {
		base = "asset"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s%s", base, suffix, ext)
}
