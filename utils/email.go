package utils

import (
	"fmt"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/templates"
	"github.com/resendlabs/resend-go"
)

const (
	resendEmailFrom = "onboarding@resend.dev"
	resendReplyFrom = "onboarding@resend.dev"
)

// Email is a struct that contains email related operations
type Email struct {
	Env *config.Env
}

// Send is a function that is used to send the signup verification code to the given email address
func (e *Email) Send(code string, email string) error {
	emailTemplate, err := templates.Email{}.VerificationCodeTmpl(code)
	if err != nil {
		return err
	}

	client := resend.NewClient(e.Env.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    resendEmailFrom,
		To:      []string{email},
		Html:    emailTemplate,
		Subject: "Verification Code",
		ReplyTo: resendReplyFrom,
	}
	send, err := client.Emails.Send(params)
	if err != nil {
		return err
	}

	logger.Log(fmt.Sprintf("[ %s ] : Verification code email sent", send.Id))
	return nil
}
