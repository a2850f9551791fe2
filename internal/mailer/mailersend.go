package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client   *mailersend.Mailersend
	from     mailersend.From
	siteName string
	enabled  bool
}

func NewMailerSend(apiKey, fromName, fromEmail, siteName string) *MailerSendClient {
	m := &MailerSendClient{
		enabled:  apiKey != "" && fromEmail != "",
		siteName: siteName,
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendConfirmationEmail(toEmail, confirmURL string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Confirm your registration at %s", m.siteName)
	html := fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Please confirm your email address by clicking the link below:</p>
		<p><a href="%s">Confirm Email</a></p>
		<p>This link will expire in 2 hours.</p>
		<p>If you didn't create an account with us, please ignore this email.</p>
	`, m.siteName, confirmURL)

	text := fmt.Sprintf("Please confirm your email by clicking this link: %s", confirmURL)

	return m.sendEmail(toEmail, subject, text, html)
}

func (m *MailerSendClient) SendBookingReceivedEmail(toEmail, bookingToken string, checkIn, checkOut time.Time) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Your booking at %s", m.siteName)
	html := fmt.Sprintf(`
		<h2>Booking received</h2>
		<p>Booking reference: <strong>%s</strong></p>
		<p>Check-in: %s<br>Check-out: %s</p>
		<p>Our staff will assign rooms to your booking shortly.</p>
	`, bookingToken, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))

	text := fmt.Sprintf("Booking %s received. Check-in: %s, check-out: %s.",
		bookingToken, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))

	return m.sendEmail(toEmail, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
