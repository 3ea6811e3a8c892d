package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/notify"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// FindOrCreateResult tags which path FindOrCreateUser took.
type FindOrCreateResult int

const (
	Found FindOrCreateResult = iota
	Created
)

func (r FindOrCreateResult) String() string {
	if r == Created {
		return "created"
	}
	return "found"
}

// AuthService runs the email OTP, registration and login flow.
//
// There is no locking around the read-modify-write of a user record.
// Concurrent requests for the same email race and the last write wins.
type AuthService struct {
	Store    store.Store
	Notifier notify.Notifier
	Tokens   *TokenService
	Hasher   *cryptox.Hasher

	// OTPTTL bounds how long an issued code stays valid. Zero means codes
	// never expire.
	OTPTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

type SendOTPResult struct {
	UserID  string
	Outcome FindOrCreateResult
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Mobile          string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// FindOrCreateUser returns the record for email, creating an unverified one
// when none exists.
func (s *AuthService) FindOrCreateUser(ctx context.Context, email string) (domain.User, FindOrCreateResult, error) {
	users := s.Store.Users()

	u, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		return u, Found, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, Found, err
	}

	now := s.now()
	u = domain.User{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent request for the same email.
			u, err = users.GetUserByEmail(ctx, email)
			return u, Found, err
		}
		return domain.User{}, Found, err
	}
	return u, Created, nil
}

// SendOTP issues a fresh code for email, overwriting any pending one, and
// hands it to the Notifier. The stored code is not rolled back when delivery
// fails.
func (s *AuthService) SendOTP(ctx context.Context, email string) (SendOTPResult, error) {
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(email) == "" {
		return SendOTPResult{}, ErrEmailRequired
	}

	u, outcome, err := s.FindOrCreateUser(ctx, email)
	if err != nil {
		return SendOTPResult{}, fmt.Errorf("find or create user: %w", err)
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return SendOTPResult{}, err
	}

	u.OTP = &code
	u.OTPExpiresAt = nil
	if s.OTPTTL > 0 {
		exp := s.now().Add(s.OTPTTL)
		u.OTPExpiresAt = &exp
	}
	if err := s.Store.Users().SaveUser(ctx, u); err != nil {
		return SendOTPResult{}, fmt.Errorf("store otp: %w", err)
	}

	if err := s.Notifier.SendOTP(ctx, email, code); err != nil {
		l.Error("otp delivery failed", slog.String("user_id", u.ID), slog.Any("error", err))
		return SendOTPResult{}, fmt.Errorf("deliver otp: %w", err)
	}

	l.Info("otp issued", slog.String("user_id", u.ID), slog.String("outcome", outcome.String()))
	return SendOTPResult{UserID: u.ID, Outcome: outcome}, nil
}

// VerifyOTP marks the user verified when code matches the pending one. A
// missing user, no pending code, an expired code and a wrong code all
// return ErrInvalidOTP.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if !u.HasPendingOTP() || u.OTPExpired(s.now()) || !cryptox.EqualOTP(*u.OTP, code) {
		slogx.FromContext(ctx).Info("otp verification failed", slog.String("user_id", u.ID))
		return ErrInvalidOTP
	}

	u.IsVerified = true
	u.OTP = nil
	u.OTPExpiresAt = nil
	if err := s.Store.Users().SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save verified user: %w", err)
	}
	return nil
}

// Register sets the password and mobile of a verified user. Checks run in
// order and stop at the first failure: the user exists, is verified, and
// the two passwords match.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.IsVerified {
		return ErrEmailNotVerified
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if in.Password == "" {
		return ErrPasswordRequired
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return err
	}

	u.PasswordHash = &hash
	u.Mobile = nil
	if in.Mobile != "" {
		mobile := in.Mobile
		u.Mobile = &mobile
	}
	if err := s.Store.Users().SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save registered user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return nil
}

// Login checks the password of a registered user and issues a session
// token. Unknown users and users without a password fail exactly like a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, err
	}
	if err != nil || u.PasswordHash == nil {
		s.Hasher.CompareDummy(password)
		l.Info("login failed", slog.String("reason", "no credentials"))
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, *u.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", u.ID), slog.String("reason", "password mismatch"))
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, exp, err := s.Tokens.Issue(u, s.now())
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("login succeeded", slog.String("user_id", u.ID))
	return LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

// Me returns the user a verified token was issued to.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
