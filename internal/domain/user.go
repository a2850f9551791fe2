package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kvitka/hotel-bookings/internal/utils"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	EmailConfirmed bool      `json:"email_confirmed"`
	IsActive       bool      `json:"is_active"`
	IsStaff        bool      `json:"is_staff"`
	IsSuperuser    bool      `json:"is_superuser"`
	Joined         time.Time `json:"joined"`
}

// Valid user roles, derived from the authorization flags.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

func (u *User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleAdmin
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// Profile belongs to exactly one user. All fields stay null until the user
// finishes the continue-registration step.
type Profile struct {
	UserID    int64      `json:"user_id"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Birthday  *time.Time `json:"birthday"`
	Telephone *string    `json:"telephone"`
}

// HasNecessaryData reports whether all four profile fields are populated.
func (p *Profile) HasNecessaryData() bool {
	return p.FirstName != nil && *p.FirstName != "" &&
		p.LastName != nil && *p.LastName != "" &&
		p.Birthday != nil &&
		p.Telephone != nil && *p.Telephone != ""
}

type RegisterRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.Password != r.ConfirmedPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

type UserInfo struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	EmailConfirmed  bool   `json:"email_confirmed"`
	ProfileComplete bool   `json:"profile_complete"`
}

// ToUserInfo converts User to UserInfo (without sensitive data).
func (u *User) ToUserInfo(profileComplete bool) *UserInfo {
	return &UserInfo{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role(),
		EmailConfirmed:  u.EmailConfirmed,
		ProfileComplete: profileComplete,
	}
}

// UpdateProfileRequest carries the continue-registration form. Birthday uses
// the 2006-01-02 layout.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
	Telephone string `json:"telephone"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Birthday = strings.TrimSpace(r.Birthday)
	r.Telephone = strings.TrimSpace(r.Telephone)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
