package mailer

import (
	"time"

	"github.com/kvitka/hotel-bookings/pkg/logger"
)

// DevMailer logs outgoing mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendConfirmationEmail(toEmail, confirmURL string) error {
	logger.Info("[DEV MAIL] confirmation email",
		"to", toEmail,
		"confirm_url", confirmURL,
	)
	return nil
}

func (d *DevMailer) SendBookingReceivedEmail(toEmail, bookingToken string, checkIn, checkOut time.Time) error {
	logger.Info("[DEV MAIL] booking received email",
		"to", toEmail,
		"booking_token", bookingToken,
		"check_in", checkIn.Format(time.DateOnly),
		"check_out", checkOut.Format(time.DateOnly),
	)
	return nil
}
