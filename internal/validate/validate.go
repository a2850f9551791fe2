// Package validate holds the booking-validity and profile-format rules.
// Each entry point applies the rules it needs explicitly; there is no
// shared form machinery.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

// Name checks the letters-only rule for profile names. The alphabet is the
// combined Latin and Cyrillic set, which covers і, ї, є, ґ and their
// uppercase variants.
func Name(field, value string) error {
	if value == "" {
		return &domain.InvalidNameError{Field: field}
	}
	for _, r := range value {
		if !unicode.Is(unicode.Latin, r) && !unicode.Is(unicode.Cyrillic, r) {
			return &domain.InvalidNameError{Field: field}
		}
	}
	return nil
}

// Phone normalizes a telephone number to the fixed `+38 (XXX) XXX XX XX`
// pattern. Input must contain exactly 10 or 12 ASCII digits after stripping
// everything else; a 12-digit number drops its leading country code.
func Phone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch len(d) {
	case 10:
	case 12:
		d = d[2:]
	default:
		return "", domain.ErrInvalidPhone
	}

	return fmt.Sprintf("+38 (%s) %s %s %s", d[0:3], d[3:6], d[6:8], d[8:10]), nil
}

// Birthday parses the 2006-01-02 form value.
func Birthday(raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidBirthday
	}
	return t, nil
}

// Persons rejects non-positive guest counts.
func Persons(n int) error {
	if n <= 0 {
		return domain.ErrInvalidPersonCount
	}
	return nil
}

// CheckInDate rejects check-in dates before today.
func CheckInDate(checkIn, today time.Time) error {
	if dateOnly(checkIn).Before(dateOnly(today)) {
		return domain.ErrPastDate
	}
	return nil
}

// CheckOutDate rejects check-out dates before today or before check-in.
func CheckOutDate(checkOut, checkIn, today time.Time) error {
	if dateOnly(checkOut).Before(dateOnly(today)) {
		return domain.ErrPastDate
	}
	if dateOnly(checkOut).Before(dateOnly(checkIn)) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// BookingDates applies both date rules.
func BookingDates(checkIn, checkOut, today time.Time) error {
	if err := CheckInDate(checkIn, today); err != nil {
		return err
	}
	return CheckOutDate(checkOut, checkIn, today)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
