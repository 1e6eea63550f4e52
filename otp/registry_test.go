package otp

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/notestack/auth/errors"
)

const testDomain = "@nitjsr.ac.in"

type fakeNotifier struct {
	fail      bool
	lastCode  string
	lastEmail string
	sendCount int
}

func (f *fakeNotifier) Send(code string, email string) error {
	if f.fail {
		return fmt.Errorf("relay unreachable")
	}

	f.lastCode = code
	f.lastEmail = email
	f.sendCount++
	return nil
}

type fakeAccounts struct {
	existing map[string]bool
}

func (f *fakeAccounts) Exists(email string) (bool, error) {
	return f.existing[email], nil
}

func newTestRegistry() (*Registry, *fakeNotifier, *fakeAccounts, *time.Time) {
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	notifier := &fakeNotifier{}
	accounts := &fakeAccounts{existing: map[string]bool{}}

	registry := NewRegistry(notifier, accounts, testDomain)
	registry.Now = func() time.Time {
		return now
	}

	return registry, notifier, accounts, &now
}

func TestIssueStoresSingleRecord(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()

	err := registry.Issue("23CS001", "A", "pw123456")
	if err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	if len(registry.records) != 1 {
		T.Fatalf("expected exactly one record, got %d", len(registry.records))
	}

	record, ok := registry.records["23CS001"+testDomain]
	if !ok {
		T.Fatal("record is not keyed by the derived email")
	}

	if matched := regexp.MustCompile(`^[1-9][0-9]{5}$`).MatchString(record.Code); !matched {
		T.Fatalf("code is not a 6 digit number : %s", record.Code)
	}
	if record.Code != notifier.lastCode {
		T.Fatal("stored code differs from the sent code")
	}
	if notifier.lastEmail != "23CS001"+testDomain {
		T.Fatalf("code was sent to the wrong address : %s", notifier.lastEmail)
	}
	if record.Verified {
		T.Fatal("record must not start out verified")
	}
	if !record.ExpiresAt.Equal(record.CreatedAt.Add(10 * time.Minute)) {
		T.Fatal("record does not expire 10 minutes after creation")
	}
}

func TestIssueValidation(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()

	args := []struct {
		RollNo   string
		Name     string
		Password string
	}{
		{"", "A", "pw123456"},
		{"23CS001", "", "pw123456"},
		{"23CS001", "A", ""},
		{"", "", ""},
	}

	for _, arg := range args {
		err := registry.Issue(arg.RollNo, arg.Name, arg.Password)
		if err != errors.ErrAllFieldsRequired {
			T.Fatalf("expected %v, got %v", errors.ErrAllFieldsRequired, err)
		}
	}

	if len(registry.records) != 0 {
		T.Fatal("no record must be stored for invalid input")
	}
	if notifier.sendCount != 0 {
		T.Fatal("no code must be sent for invalid input")
	}
}

func TestIssueExistingAccount(T *testing.T) {
	registry, notifier, accounts, _ := newTestRegistry()
	accounts.existing["23CS001"+testDomain] = true

	err := registry.Issue("23CS001", "A", "pw123456")
	if err != errors.ErrUserAlreadyExists {
		T.Fatalf("expected %v, got %v", errors.ErrUserAlreadyExists, err)
	}

	if len(registry.records) != 0 {
		T.Fatal("no record must be stored when an account already exists")
	}
	if notifier.sendCount != 0 {
		T.Fatal("no code must be sent when an account already exists")
	}
}

func TestIssueDeliveryFailure(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()
	notifier.fail = true

	err := registry.Issue("23CS001", "A", "pw123456")
	if err != errors.ErrOTPDeliveryFailed {
		T.Fatalf("expected %v, got %v", errors.ErrOTPDeliveryFailed, err)
	}

	if len(registry.records) != 0 {
		T.Fatal("a failed delivery must not leave a pending record behind")
	}
}

func TestIssueOverwritesPriorCode(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("first Issue failed : %v", err)
	}
	oldCode := notifier.lastCode

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("second Issue failed : %v", err)
	}
	newCode := notifier.lastCode

	if len(registry.records) != 1 {
		T.Fatalf("expected exactly one record, got %d", len(registry.records))
	}

	if oldCode != newCode {
		if err := registry.VerifyCode("23CS001", oldCode); err != errors.ErrOTPMismatch {
			T.Fatalf("superseded code must no longer verify, got %v", err)
		}
	}
	if err := registry.VerifyCode("23CS001", newCode); err != nil {
		T.Fatalf("latest code must verify : %v", err)
	}
}

func TestVerifyCode(T *testing.T) {
	registry, notifier, _, now := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	*now = now.Add(3 * time.Minute)

	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("VerifyCode failed : %v", err)
	}

	record := registry.records["23CS001"+testDomain]
	if !record.Verified {
		T.Fatal("record is not marked as verified")
	}
	if !record.VerifiedAt.Equal(*now) {
		T.Fatal("VerifiedAt is not set to the verification time")
	}

	// repeating the verification within the expiry window stays successful
	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("repeated VerifyCode failed : %v", err)
	}
}

func TestVerifyCodeValidation(T *testing.T) {
	registry, _, _, _ := newTestRegistry()

	args := []struct {
		RollNo string
		Code   string
	}{
		{"", "123456"},
		{"23CS001", ""},
	}

	for _, arg := range args {
		err := registry.VerifyCode(arg.RollNo, arg.Code)
		if err != errors.ErrAllFieldsRequired {
			T.Fatalf("expected %v, got %v", errors.ErrAllFieldsRequired, err)
		}
	}
}

func TestVerifyCodeUnknownRollNo(T *testing.T) {
	registry, _, _, _ := newTestRegistry()

	err := registry.VerifyCode("23CS001", "123456")
	if err != errors.ErrOTPNotFound {
		T.Fatalf("expected %v, got %v", errors.ErrOTPNotFound, err)
	}
}

func TestVerifyCodeMismatchIsRetryable(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	wrong := "000000"
	if wrong == notifier.lastCode {
		wrong = "000001"
	}

	if err := registry.VerifyCode("23CS001", wrong); err != errors.ErrOTPMismatch {
		T.Fatalf("expected %v, got %v", errors.ErrOTPMismatch, err)
	}

	if len(registry.records) != 1 {
		T.Fatal("a wrong code must leave the record intact")
	}

	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("retry with the correct code failed : %v", err)
	}
}

func TestVerifyCodeExpired(T *testing.T) {
	registry, notifier, _, now := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	*now = now.Add(10*time.Minute + time.Second)

	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != errors.ErrOTPExpired {
		T.Fatalf("expected %v, got %v", errors.ErrOTPExpired, err)
	}

	if len(registry.records) != 0 {
		T.Fatal("an expired record must be removed on verification")
	}

	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != errors.ErrOTPNotFound {
		T.Fatalf("expected %v after removal, got %v", errors.ErrOTPNotFound, err)
	}
}

func TestConsumeBeforeVerify(T *testing.T) {
	registry, _, _, _ := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	_, err := registry.Consume("23CS001")
	if err != errors.ErrOTPNotVerified {
		T.Fatalf("expected %v, got %v", errors.ErrOTPNotVerified, err)
	}
}

func TestConsumeAfterGraceWindow(T *testing.T) {
	registry, notifier, _, now := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}
	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("VerifyCode failed : %v", err)
	}

	*now = now.Add(5*time.Minute + time.Second)

	_, err := registry.Consume("23CS001")
	if err != errors.ErrVerificationExpired {
		T.Fatalf("expected %v, got %v", errors.ErrVerificationExpired, err)
	}

	if len(registry.records) != 0 {
		T.Fatal("a record past the grace window must be removed on consumption")
	}
}

func TestConsumeConflict(T *testing.T) {
	registry, notifier, accounts, _ := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}
	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("VerifyCode failed : %v", err)
	}

	accounts.existing["23CS001"+testDomain] = true

	_, err := registry.Consume("23CS001")
	if err != errors.ErrUserAlreadyExists {
		T.Fatalf("expected %v, got %v", errors.ErrUserAlreadyExists, err)
	}
}

func TestConsumeExactlyOnce(T *testing.T) {
	registry, notifier, _, _ := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}
	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("VerifyCode failed : %v", err)
	}

	pending, err := registry.Consume("23CS001")
	if err != nil {
		T.Fatalf("Consume failed : %v", err)
	}
	if pending.Name != "A" || pending.RollNo != "23CS001" || pending.Password != "pw123456" {
		T.Fatalf("staged signup fields are wrong : %+v", pending)
	}

	_, err = registry.Consume("23CS001")
	if err != errors.ErrOTPNotFound {
		T.Fatalf("expected %v on a second consumption, got %v", errors.ErrOTPNotFound, err)
	}
}

func TestSweep(T *testing.T) {
	registry, _, _, now := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}
	if err := registry.Issue("23CS002", "B", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	*now = now.Add(6 * time.Minute)

	if err := registry.Issue("23CS003", "C", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	*now = now.Add(5 * time.Minute)

	registry.Sweep()

	if len(registry.records) != 1 {
		T.Fatalf("expected only the live record to survive, got %d", len(registry.records))
	}
	if _, ok := registry.records["23CS003"+testDomain]; !ok {
		T.Fatal("the live record must never be swept")
	}

	// sweeping again is a no-op
	registry.Sweep()
	if len(registry.records) != 1 {
		T.Fatal("repeated Sweep must not remove live records")
	}
}

func TestSignupFlow(T *testing.T) {
	registry, notifier, _, now := newTestRegistry()

	if err := registry.Issue("23CS001", "A", "pw123456"); err != nil {
		T.Fatalf("Issue failed : %v", err)
	}

	*now = now.Add(8 * time.Minute)

	if err := registry.VerifyCode("23CS001", notifier.lastCode); err != nil {
		T.Fatalf("VerifyCode failed : %v", err)
	}

	*now = now.Add(2 * time.Minute)

	pending, err := registry.Consume("23CS001")
	if err != nil {
		T.Fatalf("Consume failed : %v", err)
	}
	if pending.Name != "A" || pending.RollNo != "23CS001" || pending.Password != "pw123456" {
		T.Fatalf("staged signup fields are wrong : %+v", pending)
	}

	if len(registry.records) != 0 {
		T.Fatal("the registry must be empty after the signup flow completes")
	}
}
