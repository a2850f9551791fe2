package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/mailer"
	"github.com/kvitka/hotel-bookings/internal/repo/postgres"
	"github.com/kvitka/hotel-bookings/internal/token"
	"github.com/kvitka/hotel-bookings/internal/utils"
	"github.com/kvitka/hotel-bookings/internal/validate"
	"github.com/kvitka/hotel-bookings/pkg/auth"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/events"
	"github.com/kvitka/hotel-bookings/pkg/logger"
)

// AccountView is the account page payload: the user plus its profile and the
// derived profile-complete state.
type AccountView struct {
	User            *domain.UserInfo `json:"user"`
	Profile         *domain.Profile  `json:"profile"`
	ProfileComplete bool             `json:"profile_complete"`
}

type AccountService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error)
	ConfirmEmail(ctx context.Context, userID int64, confirmToken string) (*domain.User, error)
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Account(ctx context.Context, userID int64) (*AccountView, error)
	UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.Profile, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type accountService struct {
	userRepo postgres.UserRepository
	tokens   *token.Generator
	mailer   mailer.Service
	eventBus events.EventBus
	config   *config.Config
}

func NewAccountService(
	userRepo postgres.UserRepository,
	tokens *token.Generator,
	mailer mailer.Service,
	eventBus events.EventBus,
	config *config.Config,
) AccountService {
	return &accountService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		eventBus: eventBus,
		config:   config,
	}
}

func (s *accountService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", domain.ErrDuplicateAccount
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// User and its empty profile are created in one transaction.
	user, _, err := s.userRepo.Create(ctx, req.Email, passwordHash)
	if err != nil {
		if err == domain.ErrDuplicateAccount {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	confirmURL := s.buildConfirmationURL(user)
	if err := s.mailer.SendConfirmationEmail(user.Email, confirmURL); err != nil {
		// Registration stands even when the mail fails; the user can
		// request a resend.
		logger.ErrorContext(ctx, "Failed to send confirmation email", "error", err, "user_id", user.ID)
	}

	event := events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Joined: user.Joined,
	}
	if err := s.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	return user, confirmURL, nil
}

func (s *accountService) ConfirmEmail(ctx context.Context, userID int64, confirmToken string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrConfirmationFailed
	}
	if user.EmailConfirmed {
		return user, nil
	}

	if !s.tokens.Verify(user, confirmToken) {
		return nil, domain.ErrConfirmationFailed
	}

	if err := s.userRepo.MarkEmailConfirmed(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email confirmed: %w", err)
	}
	user.EmailConfirmed = true

	event := events.UserEmailConfirmedEvent{
		UserID:      user.ID,
		Email:       user.Email,
		ConfirmedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.UserEmailConfirmed, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish email confirmed event", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *accountService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		// Don't reveal whether the account exists.
		return nil
	}
	if user.EmailConfirmed {
		return nil
	}

	confirmURL := s.buildConfirmationURL(user)
	if err := s.mailer.SendConfirmationEmail(user.Email, confirmURL); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

func (s *accountService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	// Credentials match; unconfirmed accounts get a distinguishable error
	// so the caller can offer a resend.
	if !user.EmailConfirmed {
		return nil, domain.ErrEmailNotConfirmed
	}

	accessToken, err := auth.NewAccessToken(
		user.ID, user.Email, user.Role(),
		s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := auth.NewAccessToken(
		user.ID, user.Email, "refresh",
		s.config.Auth.JWTSecret, s.config.Auth.RefreshTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	profileComplete, err := s.profileComplete(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:         user.ToUserInfo(profileComplete),
	}, nil
}

func (s *accountService) Account(ctx context.Context, userID int64) (*AccountView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile missing for user %d", userID)
	}

	complete := profile.HasNecessaryData()
	return &AccountView{
		User:            user.ToUserInfo(complete),
		Profile:         profile,
		ProfileComplete: complete,
	}, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	req.Normalize()

	if err := validate.Name("first_name", req.FirstName); err != nil {
		return nil, err
	}
	if err := validate.Name("last_name", req.LastName); err != nil {
		return nil, err
	}

	birthday, err := validate.Birthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	telephone, err := validate.Phone(req.Telephone)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:    userID,
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
		Birthday:  &birthday,
		Telephone: &telephone,
	}

	updated, err := s.userRepo.UpdateProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

func (s *accountService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *accountService) profileComplete(ctx context.Context, userID int64) (bool, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile != nil && profile.HasNecessaryData(), nil
}

func (s *accountService) buildConfirmationURL(user *domain.User) string {
	return fmt.Sprintf("%s/auth/confirm-email?uid=%d&token=%s",
		s.config.Site.BaseURL, user.ID, s.tokens.Mint(user))
}
