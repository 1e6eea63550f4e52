// Package controllers contains the request handlers of the server
package controllers

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/connect"
	"github.com/notestack/auth/errors"
	"github.com/notestack/auth/models"
	"github.com/notestack/auth/otp"
	"github.com/notestack/auth/schemas"
	"github.com/notestack/auth/services"
	"github.com/notestack/auth/token"
	"github.com/notestack/auth/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Auth struct contains all the auth related controllers
type Auth struct {
	Conn     *connect.Connector
	Env      *config.Env
	Registry *otp.Registry
}

// SendOTP is a function that is used to send the signup verification code to the
// email address derived from the roll number
func (a *Auth) SendOTP(c *fiber.Ctx) error {
	var payload struct {
		RollNo   string `json:"rollNo" validate:"required,validate_roll_no"`
		Name     string `json:"name" validate:"required,min=3,max=60"`
		Password string `json:"password" validate:"required,min=6,max=200,validate_password"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_roll_no", validate.RollNo)
	v.RegisterValidation("validate_password", validate.Password)
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	err = a.Registry.Issue(payload.RollNo, payload.Name, payload.Password)
	if err != nil {
		switch err {
		case errors.ErrAllFieldsRequired:
			return errors.AllFieldsRequired(c)
		case errors.ErrUserAlreadyExists:
			return errors.UserAlreadyExists(c)
		case errors.ErrOTPDeliveryFailed:
			return errors.OTPDeliveryFailed(c)
		default:
			logger.Error(err)
			return errors.InternalServerErr(c)
		}
	}

	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Success: true,
		Message: "OTP sent successfully",
	})
}

// VerifyOTP is a function that is used to check the verification code presented by the user
func (a *Auth) VerifyOTP(c *fiber.Ctx) error {
	var payload struct {
		RollNo string `json:"rollNo" validate:"required,validate_roll_no"`
		OTP    string `json:"otp" validate:"required,len=6,numeric"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_roll_no", validate.RollNo)
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	err = a.Registry.VerifyCode(payload.RollNo, payload.OTP)
	if err != nil {
		switch err {
		case errors.ErrAllFieldsRequired:
			return errors.AllFieldsRequired(c)
		case errors.ErrOTPNotFound:
			return errors.OTPNotFound(c)
		case errors.ErrOTPExpired:
			return errors.OTPExpired(c)
		case errors.ErrOTPMismatch:
			return errors.OTPMismatch(c)
		default:
			logger.Error(err)
			return errors.InternalServerErr(c)
		}
	}

	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Success: true,
		Message: "OTP verified successfully",
	})
}

// Signup is a function that is used to create the user account once the verification
// code has been verified
func (a *Auth) Signup(c *fiber.Ctx) error {
	var payload struct {
		RollNo string `json:"rollNo" validate:"required,validate_roll_no"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_roll_no", validate.RollNo)
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	pending, err := a.Registry.Consume(payload.RollNo)
	if err != nil {
		switch err {
		case errors.ErrAllFieldsRequired:
			return errors.AllFieldsRequired(c)
		case errors.ErrOTPNotFound, errors.ErrOTPNotVerified:
			return errors.OTPNotVerified(c)
		case errors.ErrVerificationExpired:
			return errors.VerificationExpired(c)
		case errors.ErrUserAlreadyExists:
			return errors.UserAlreadyExists(c)
		default:
			logger.Error(err)
			return errors.InternalServerErr(c)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	userS := services.User{
		Conn: a.Conn,
	}
	_, err = userS.Create(models.User{
		Name:     pending.Name,
		RollNo:   pending.RollNo,
		Email:    a.Registry.DeriveEmail(pending.RollNo),
		Password: string(hashedPassword),
	})
	if err != nil {
		if ok := (errors.CheckDBError{}.DuplicateKey(err)); ok {
			return errors.UserAlreadyExists(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return c.Status(fiber.StatusCreated).JSON(schemas.Res{
		Success: true,
		Message: "Signup successful",
	})
}

// Login is a funciton that is used to login the user with the email and password
func (a *Auth) Login(c *fiber.Ctx) error {
	var payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	v := validator.New()
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.AllFieldsRequired(c)
	}

	userS := services.User{
		Conn: a.Conn,
	}

	user, err := userS.GetUserWithEmail(payload.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.UserNotFound(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password))
	if err != nil {
		return errors.PasswordNotMatched(c)
	}

	accessTokenS := token.Access{
		Env: a.Env,
	}
	accessToken, err := accessTokenS.Create(*user)
	if err != nil {
		logger.ErrorWithMsg(err, "Failed to create the access token")
		return errors.InternalServerErr(c)
	}

	return c.Status(fiber.StatusOK).JSON(schemas.LoginRes{
		Success: true,
		Message: "Login success",
		Token:   accessToken,
		Name:    user.Name,
		Email:   user.Email,
		ID:      user.ID.String(),
	})
}

// User is a function that is used to get the details of the user with the given ID
func (a *Auth) User(c *fiber.Ctx) error {
	var payload struct {
		UserID string `json:"userId" validate:"required,uuid"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	userS := services.User{
		Conn: a.Conn,
	}

	user, err := userS.GetUserWithID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.UserNotFound(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": schemas.FilterUser(*user),
	})
}
