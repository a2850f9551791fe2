package mailer

import "time"

type Service interface {
	SendConfirmationEmail(toEmail, confirmURL string) error
	SendBookingReceivedEmail(toEmail, bookingToken string, checkIn, checkOut time.Time) error
}
