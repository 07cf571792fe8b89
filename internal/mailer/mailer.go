package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends agent notifications over plain SMTP.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

func (m *SMTPMailer) SendListingCreated(toEmail, title string) error {
	body := fmt.Sprintf("Your listing '%s' has been published.", title)
	return m.send(toEmail, "Listing published", body)
}

func (m *SMTPMailer) SendListingDeactivated(toEmail, title string) error {
	body := fmt.Sprintf("Your listing '%s' has been deactivated by an administrator.", title)
	return m.send(toEmail, "Listing deactivated", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
