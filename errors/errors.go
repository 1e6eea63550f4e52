// Package errors contians http errors and other custom errors
package errors

import (
	errs "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/notestack/auth/schemas"
)

//revive:disable

var (
	ErrInternalServerError = fmt.Errorf("internal_server_error")
	ErrBadRequest          = fmt.Errorf("bad_request")
	ErrUnauthorized        = fmt.Errorf("unauthorized")
	ErrTokenExpired        = fmt.Errorf("token_expired")
	ErrAllFieldsRequired   = fmt.Errorf("all_fields_required")
	ErrUserAlreadyExists   = fmt.Errorf("user_already_exists")
	ErrUserNotFound        = fmt.Errorf("user_not_found")
	ErrPasswordNotMatched  = fmt.Errorf("password_not_matched")
	ErrOTPDeliveryFailed   = fmt.Errorf("otp_delivery_failed")
	ErrOTPNotFound         = fmt.Errorf("otp_not_found")
	ErrOTPExpired          = fmt.Errorf("otp_expired")
	ErrOTPMismatch         = fmt.Errorf("otp_mismatch")
	ErrOTPNotVerified      = fmt.Errorf("otp_not_verified")
	ErrVerificationExpired = fmt.Errorf("otp_verification_expired")
)

type res schemas.Res

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(res{
		Success: false,
		Message: message,
	})
}

func InternalServerErr(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func BadRequest(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Bad request")
}

func Unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Unauthorized")
}

func TokenExpired(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Token expired. Please login again")
}

func AllFieldsRequired(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "All fields are required")
}

func UserAlreadyExists(c *fiber.Ctx) error {
	return fail(c, fiber.StatusConflict, "User already exists. Please login")
}

func UserNotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusForbidden, "User not found")
}

func PasswordNotMatched(c *fiber.Ctx) error {
	return fail(c, fiber.StatusForbidden, "Password not matched")
}

func OTPDeliveryFailed(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Failed to send OTP email")
}

func OTPNotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "OTP not sent or expired")
}

func OTPExpired(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "OTP has expired. Please request a new one.")
}

func OTPMismatch(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Invalid OTP")
}

func OTPNotVerified(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "OTP not verified. Please verify OTP first.")
}

func VerificationExpired(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "OTP verification expired. Please verify again.")
}

//revive:enable

// CheckDBError is a struc that is used to identify the database errors
type CheckDBError struct{}

// DuplicateKey is a function that is used to find wether the the returned postgres error
// is due to a duplicate key entry (A unique key constraint)
func (CheckDBError) DuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return true
		}
	}

	return false
}

// CheckTokenError is a struct that is used to handle token related errors
type CheckTokenError struct{}

// Expired is a function that is used to identify wether the token is expired or not
func (CheckTokenError) Expired(err error) bool {
	return err.Error() == "token has invalid claims: token is expired"
}
