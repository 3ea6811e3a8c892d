package domain

import "time"

// UserState is derived from the verification flag and password hash; it is
// never stored.
type UserState string

const (
	UserUnverified UserState = "unverified"
	UserVerified   UserState = "verified"
	UserRegistered UserState = "registered"
)

type User struct {
	ID           string
	Email        string     // unique, matched exactly
	OTP          *string    // pending six digit code, nil once consumed
	OTPExpiresAt *time.Time // nil means the code never expires
	IsVerified   bool
	PasswordHash *string // bcrypt, nil until registration
	Mobile       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) State() UserState {
	switch {
	case !u.IsVerified:
		return UserUnverified
	case u.PasswordHash == nil:
		return UserVerified
	default:
		return UserRegistered
	}
}

// HasPendingOTP reports whether a code is stored.
func (u User) HasPendingOTP() bool {
	return u.OTP != nil && *u.OTP != ""
}

// OTPExpired reports whether the pending code has passed its expiry.
func (u User) OTPExpired(now time.Time) bool {
	return u.OTPExpiresAt != nil && !now.Before(*u.OTPExpiresAt)
}

// MobileOrEmpty dereferences Mobile for responses.
func (u User) MobileOrEmpty() string {
	if u.Mobile == nil {
		return ""
	}
	return *u.Mobile
}
