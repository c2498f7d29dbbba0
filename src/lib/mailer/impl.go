package mailer

import (
	"fmt"
	"iea/src/config"
	"iea/src/lib"
	"os"
)

// SendTicketIssuedEmail mails the registrant their ticket link and QR code.
// Failure here never unwinds issuance; the ticket page is the durable copy.
func SendTicketIssuedEmail(fullName, email, ticketId, qrCode string) error {
	ticketLink := fmt.Sprintf("%s/ticket/%s", config.PublicHost(), ticketId)
	body := fmt.Sprintf(`
		<h2>Hello %s</h2>
		<p>Your payment was successful.</p>
		<a href="%s">View Ticket</a><br/><br/>
		<img src="%s" width="250" />
	`, fullName, ticketLink, qrCode)
	return lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Event Tickets",
		To:       []string{email},
		Subject:  "Your Event Ticket",
		Body:     body,
		Html:     true,
	})
}
