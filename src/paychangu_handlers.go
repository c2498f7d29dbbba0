package main

import (
	"crypto/subtle"
	"errors"
	"iea/src/config"
	"iea/src/db"
	"iea/src/lib"
	"iea/src/lib/mailer"
	"iea/src/models"
	"iea/src/types"
	"iea/src/utils"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const paychanguSignatureHeader = "x-paychangu-signature"

func paychanguRoutes(g *gin.Engine) *gin.RouterGroup {
	api := g.Group("/api/paychangu")
	api.
		POST("/initiate", func(ctx *gin.Context) {
			var body types.InitiatePaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			reference := uuid.NewString()
			pc := lib.GetPayChanguClient()
			payment, err := pc.RequestMobileMoneyPayment(ctx.Request.Context(), &lib.MobileMoneyPaymentInput{
				Amount:      config.TicketPrice(),
				Currency:    config.TicketCurrency,
				PhoneNumber: body.Phone,
				Method:      body.Method,
				Reference:   reference,
				Metadata: map[string]string{
					"fullName":    body.FullName,
					"email":       body.Email,
					"institution": body.Institution,
					"course":      body.Course,
				},
			})
			if err != nil {
				log.Printf("Payment initiation failed for reference [%s]: %s\n", reference, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initiation failed"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{
				"success":   true,
				"reference": reference,
				"payment":   payment,
			})
		}).
		POST("/webhook", func(ctx *gin.Context) {
			signature := ctx.GetHeader(paychanguSignatureHeader)
			whsecret := os.Getenv("PAYCHANGU_WEBHOOK_SECRET")
			if whsecret == "" || subtle.ConstantTimeCompare([]byte(signature), []byte(whsecret)) != 1 {
				log.Println("[PayChangu] webhook signature mismatch")
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
				return
			}

			var body types.WebhookRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("[PayChangu] error parsing webhook payload: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[PayChangu] callback: reference=%s status=%s\n", body.Reference, body.Status)

			// Failed and pending payments are acknowledged and dropped; a
			// later callback with success status completes the flow.
			if !strings.EqualFold(body.Status, "success") {
				ctx.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			if body.Reference == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing reference"})
				return
			}
			if body.Metadata.FullName == "" || body.Metadata.Email == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "metadata is missing required fields fullName/email"})
				return
			}

			// Gateways redeliver webhooks; at most one ticket per reference.
			var existing models.Ticket
			dbi := db.GetDb()
			err := dbi.
				Where(&models.Ticket{TransactionID: body.Reference}).
				First(&existing).
				Error
			if err == nil {
				ctx.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[PayChangu] error checking for existing ticket [%s]: %s\n", body.Reference, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook error"})
				return
			}

			ticket, err := utils.IssueTicket(&body.Metadata, body.Reference)
			if err != nil {
				// Lost the race against a concurrent duplicate delivery:
				// the ticket exists, so this is a no-op acknowledgement.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					ctx.JSON(http.StatusOK, gin.H{"received": true})
					return
				}
				log.Printf("[PayChangu] error issuing ticket for reference [%s]: %s\n", body.Reference, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook error"})
				return
			}

			go func(t *models.Ticket) {
				if err := mailer.SendTicketIssuedEmail(t.FullName, t.Email, t.TicketID, t.QRCode); err != nil {
					log.Printf("Could not send ticket email to [%s] for reference [%s]: %s\n", t.Email, t.TransactionID, err.Error())
				}
			}(ticket)

			ctx.JSON(http.StatusOK, gin.H{"received": true})
		})
	return api
}
