package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

const userColumns = `id, email, otp, otp_expires_at, is_verified, password_hash, mobile, created_at, updated_at`

type usersRepo struct {
	db DBTX
	d  Dialect
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u            domain.User
		otp          sql.NullString
		otpExpiresAt sql.NullTime
		passwordHash sql.NullString
		mobile       sql.NullString
	)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&otp,
		&otpExpiresAt,
		&u.IsVerified,
		&passwordHash,
		&mobile,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.OTP = mapNullStringPtr(otp)
	u.OTPExpiresAt = mapNullTimePtr(otpExpiresAt)
	u.PasswordHash = mapNullStringPtr(passwordHash)
	u.Mobile = mapNullStringPtr(mobile)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.d.rebind(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID,
		u.Email,
		mapOptionalString(u.OTP),
		mapOptionalTime(u.OTPExpiresAt),
		u.IsVerified,
		mapOptionalString(u.PasswordHash),
		mapOptionalString(u.Mobile),
		ts,
		ts,
	)
	return r.d.mapWriteErr(err)
}

func (r *usersRepo) SaveUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE users
		SET otp = ?, otp_expires_at = ?, is_verified = ?, password_hash = ?, mobile = ?, updated_at = ?
		WHERE id = ?`),
		mapOptionalString(u.OTP),
		mapOptionalTime(u.OTPExpiresAt),
		u.IsVerified,
		mapOptionalString(u.PasswordHash),
		mapOptionalString(u.Mobile),
		now(),
		u.ID,
	)
	return requireRow(res, err)
}

func (r *usersRepo) ClearExpiredOTPs(ctx context.Context, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE users
		SET otp = NULL, otp_expires_at = NULL, updated_at = ?
		WHERE otp_expires_at IS NOT NULL AND otp_expires_at <= ?`),
		now(),
		at.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
