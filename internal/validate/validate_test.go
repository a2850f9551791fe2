package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"ten digits", "0671234567", "+38 (067) 123 45 67", false},
		{"twelve digits with country code", "380671234567", "+38 (067) 123 45 67", false},
		{"already formatted", "+38 (067) 123-45-67", "+38 (067) 123 45 67", false},
		{"spaces and dashes", "067 123-45-67", "+38 (067) 123 45 67", false},
		{"another operator", "0509876543", "+38 (050) 987 65 43", false},
		{"too short", "12345", "", true},
		{"eleven digits", "38067123456", "", true},
		{"thirteen digits", "3806712345678", "", true},
		{"empty", "", "", true},
		{"letters only", "call me", "", true},
		{"non-ascii digit padding the count", "01234567٦", "", true},
		{"arabic-indic digits only", "٠٦٧١٢٣٤٥٦٧", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidPhone) {
					t.Fatalf("Phone(%q) error = %v, want ErrInvalidPhone", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Phone(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	valid := []string{"Rick", "Олена", "Їжак", "Ґанна", "Євген", "maria"}
	for _, v := range valid {
		if err := Name("first_name", v); err != nil {
			t.Errorf("Name(%q) unexpected error: %v", v, err)
		}
	}

	invalid := []string{"", "R2D2", "John Smith", "Ганна-Марія", "O'Brien", "名前"}
	for _, v := range invalid {
		err := Name("last_name", v)
		var nameErr *domain.InvalidNameError
		if !errors.As(err, &nameErr) {
			t.Errorf("Name(%q) = %v, want InvalidNameError", v, err)
			continue
		}
		if nameErr.Field != "last_name" {
			t.Errorf("Name(%q) field = %q, want last_name", v, nameErr.Field)
		}
	}
}

func TestBirthday(t *testing.T) {
	got, err := Birthday("1990-05-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 1990 || got.Month() != time.May || got.Day() != 10 {
		t.Errorf("Birthday = %v, want 1990-05-10", got)
	}

	for _, bad := range []string{"", "10.05.1990", "1990-13-01", "yesterday"} {
		if _, err := Birthday(bad); !errors.Is(err, domain.ErrInvalidBirthday) {
			t.Errorf("Birthday(%q) error = %v, want ErrInvalidBirthday", bad, err)
		}
	}
}

func TestPersons(t *testing.T) {
	if err := Persons(1); err != nil {
		t.Errorf("Persons(1) unexpected error: %v", err)
	}
	if err := Persons(10); err != nil {
		t.Errorf("Persons(10) unexpected error: %v", err)
	}
	for _, n := range []int{0, -1, -100} {
		if err := Persons(n); !errors.Is(err, domain.ErrInvalidPersonCount) {
			t.Errorf("Persons(%d) error = %v, want ErrInvalidPersonCount", n, err)
		}
	}
}

func TestBookingDates(t *testing.T) {
	today := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  error
	}{
		{"future stay", day(1), day(10), nil},
		{"same day stay", day(0), day(0), nil},
		{"check in today despite time of day", day(0), day(3), nil},
		{"check in yesterday", day(-1), day(5), domain.ErrPastDate},
		{"check out in past", day(1), day(-2), domain.ErrPastDate},
		{"check out before check in", day(5), day(2), domain.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BookingDates(tt.checkIn, tt.checkOut, today)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckInDateIgnoresTimeOfDay(t *testing.T) {
	// A check-in date parsed from 2006-01-02 is midnight; it must not be
	// rejected just because the clock has moved past midnight today.
	today := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	checkIn := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if err := CheckInDate(checkIn, today); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
