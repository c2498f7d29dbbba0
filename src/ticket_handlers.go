package main

import (
	"errors"
	"html/template"
	"iea/src/db"
	"iea/src/models"
	"iea/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ticketPageTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Event Ticket</title>
</head>
<body>
<div class="ticket">
  <div class="header">
    <div class="event-title">Next Gem Founders Summit 2025</div>
    <div class="event-sub">Powered by Investors Edge Africa</div>
  </div>
  <div class="details">
    <div>
      <div class="label">Ticket Holder</div>
      <div class="value">{{.FullName}}</div>
    </div>
    <div>
      <div class="label">Ticket Number</div>
      <div class="value">{{.TicketID}}</div>
    </div>
  </div>
  <div class="qr-container">
    <img src="{{.QRCode}}" alt="QR Code">
  </div>
  <div class="footer">
    Please present this ticket at the entrance. QR code is required for check-in.
  </div>
</div>
</body>
</html>
`))

// ticketPageRoute renders the public ticket view linked from the
// confirmation email. The stored QR is replayed as-is.
func ticketPageRoute(g *gin.Engine) {
	g.GET("/ticket/:ticketId", func(ctx *gin.Context) {
		var params types.TicketURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.String(http.StatusBadRequest, "Bad request")
			return
		}
		var ticket models.Ticket
		dbi := db.GetDb()
		if err := dbi.
			Where(&models.Ticket{TicketID: params.TicketID}).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.String(http.StatusNotFound, "Ticket not found")
				return
			}
			log.Printf("Error retrieving ticket [%s]: %s\n", params.TicketID, err.Error())
			ctx.String(http.StatusInternalServerError, "Server error")
			return
		}
		ctx.Status(http.StatusOK)
		ctx.Header("Content-Type", "text/html; charset=utf-8")
		if err := ticketPageTemplate.Execute(ctx.Writer, &ticket); err != nil {
			log.Printf("Error rendering ticket [%s]: %s\n", params.TicketID, err.Error())
		}
	})
}

func ticketHandlers(g *gin.Engine, admin *gin.RouterGroup) {
	admin.GET("/tickets", func(ctx *gin.Context) {
		var tickets []models.Ticket
		dbi := db.GetDb()
		if err := dbi.
			Order("full_name asc").
			Find(&tickets).
			Error; err != nil {
			log.Printf("Error retrieving tickets: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tickets"})
			return
		}
		ctx.JSON(http.StatusOK, tickets)
	})

	// Check-in endpoint used by the door scanner. Marking a ticket used a
	// second time is a no-op, not an error.
	g.POST("/api/tickets/:ticketId/use", func(ctx *gin.Context) {
		var params types.TicketURIParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var ticket models.Ticket
		dbi := db.GetDb()
		if err := dbi.
			Where(&models.Ticket{TicketID: params.TicketID}).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
				return
			}
			log.Printf("Error retrieving ticket [%s]: %s\n", params.TicketID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if ticket.Used {
			ctx.JSON(http.StatusOK, gin.H{"message": "Ticket already used"})
			return
		}
		if err := dbi.
			Model(&models.Ticket{}).
			Where(&models.Ticket{TicketID: params.TicketID}).
			Update("used", true).
			Error; err != nil {
			log.Printf("Error marking ticket [%s] as used: %s\n", params.TicketID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		ticket.Used = true
		ctx.JSON(http.StatusOK, gin.H{"message": "Ticket marked as used", "ticket": ticket})
	})
}
