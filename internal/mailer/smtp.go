package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

type SMTPMailer struct {
	Host     string
	Port     int
	From     string
	User     string
	Pass     string
	UseTLS   bool
	SiteName string
}

func NewSMTPMailer(host string, port int, from, user, pass string, useTLS bool, siteName string) *SMTPMailer {
	return &SMTPMailer{
		Host:     strings.TrimSpace(host),
		Port:     port,
		From:     strings.TrimSpace(from),
		User:     strings.TrimSpace(user),
		Pass:     strings.TrimSpace(pass),
		UseTLS:   useTLS,
		SiteName: siteName,
	}
}

func (s *SMTPMailer) SendConfirmationEmail(toEmail, confirmURL string) error {
	subject := fmt.Sprintf("Confirm your registration at %s", s.SiteName)
	text := fmt.Sprintf("Please confirm your email by clicking this link: %s", confirmURL)
	html := fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Please confirm your email address by clicking the link below:</p>
		<p><a href="%s">Confirm Email</a></p>
		<p>This link will expire in 2 hours.</p>
	`, s.SiteName, confirmURL)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) SendBookingReceivedEmail(toEmail, bookingToken string, checkIn, checkOut time.Time) error {
	subject := fmt.Sprintf("Your booking at %s", s.SiteName)
	text := fmt.Sprintf("Booking %s received. Check-in: %s, check-out: %s.",
		bookingToken, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))
	html := fmt.Sprintf(`
		<h2>Booking received</h2>
		<p>Booking reference: <strong>%s</strong></p>
		<p>Check-in: %s<br>Check-out: %s</p>
	`, bookingToken, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) sendEmail(toEmail, subject, text, html string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"

	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	// Local development SMTP (no auth, no TLS)
	if !s.UseTLS && s.User == "" {
		return smtp.SendMail(addr, nil, s.From, []string{toEmail}, buf.Bytes())
	}

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	// Plain SMTP first (with STARTTLS if the server supports it)
	sendErr := smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes())
	if sendErr == nil {
		return nil
	}

	// Fallback to implicit TLS (port 465)
	if s.UseTLS {
		tlsCfg := &tls.Config{ServerName: s.Host}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		if s.User != "" {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}

		if err := c.Mail(s.From); err != nil {
			return err
		}
		if err := c.Rcpt(toEmail); err != nil {
			return err
		}

		w, err := c.Data()
		if err != nil {
			return err
		}

		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}

		return w.Close()
	}

	return sendErr
}
