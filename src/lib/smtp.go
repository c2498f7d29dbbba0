package lib

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

func GetSMTPClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	portEnv := os.Getenv("SMTP_PORT")
	port, err := strconv.Atoi(portEnv)
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USERNAME")
	pass := os.Getenv("SMTP_PASSWORD")
	c, err := mail.NewClient(
		host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(pass),
		mail.WithTimeout(15*time.Second),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

type SendMailInput struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	Html     bool
}

func SendMail(inputParams *SendMailInput) error {
	c, err := GetSMTPClient()
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(inputParams.FromName, inputParams.From); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
	}
	if err := msg.To(inputParams.To...); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
	}
	if inputParams.ReplyTo != "" {
		if err := msg.ReplyTo(inputParams.ReplyTo); err != nil {
			log.Printf("Failed to set Reply-To address: %s\n", err.Error())
		}
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	if err := c.DialAndSend(msg); err != nil {
		return err
	}
	return nil
}
