// Package templates contains the email templates of the server
package templates

import (
	"bytes"
	"strings"
	"text/template"
)

// Email contains all the templates that are related to email
type Email struct{}

// VerificationCodeTmpl is a function that is used to get the email with the signup verification code
func (Email) VerificationCodeTmpl(code string) (emailHTML string, err error) {
	digits := strings.Split(code, "")

	tmpl := `
<html>
  <style>
    .container {
      display: flex;
      flex-direction: row;
      align-items: center;
      justify-content: center;
      width: 100%;
      margin-top: 10px;
      column-gap: 20px;
    }

    .block {
      display: flex;
      border: 2px solid black;
      border-radius: 20%;
      width: 50px;
      height: 50px;
      align-items: center;
      justify-content: center;
    }
  </style>
  <h1>Welcome to NoteStack!</h1>
  <strong> Use the below verification code to confirm your email address </strong>
  <br />
  <br />
  <div class="container">
    <section class="block">{{.CODE1}}</section>
    <section class="block">{{.CODE2}}</section>
    <section class="block">{{.CODE3}}</section>
    <section class="block">{{.CODE4}}</section>
    <section class="block">{{.CODE5}}</section>
    <section class="block">{{.CODE6}}</section>
  </div>
  <footer>
    If you are wondering about what this email is please ignore this email
  </footer>
</html>
`

	t := template.Must(template.New("verificationCode").Parse(tmpl))

	var buf bytes.Buffer
	err = t.Execute(&buf, struct {
		CODE1 string
		CODE2 string
		CODE3 string
		CODE4 string
		CODE5 string
		CODE6 string
	}{
		CODE1: digits[0],
		CODE2: digits[1],
		CODE3: digits[2],
		CODE4: digits[3],
		CODE5: digits[4],
		CODE6: digits[5],
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
