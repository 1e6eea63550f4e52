package templates_test

import (
	"strings"
	"testing"

	"github.com/notestack/auth/templates"
)

func TestVerificationCodeTmpl(T *testing.T) {
	args := []struct {
		Code string
	}{
		{"123456"},
		{"999999"},
		{"100000"},
	}

	for _, arg := range args {
		emailHTML, err := templates.Email{}.VerificationCodeTmpl(arg.Code)
		if err != nil {
			T.Fatalf("failed to render the template : %v", err)
		}

		for _, digit := range strings.Split(arg.Code, "") {
			if !strings.Contains(emailHTML, ">"+digit+"<") {
				T.Fatalf("digit %s of code %s is missing from the rendered email", digit, arg.Code)
			}
		}

		if !strings.Contains(emailHTML, "Welcome to NoteStack!") {
			T.Fatal("the rendered email is missing the heading")
		}
	}
}
