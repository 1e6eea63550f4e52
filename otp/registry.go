// Package otp owns the verification code lifecycle that gates the signup flow
package otp

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/notestack/auth/errors"
)

const (
	codeValidity  = 10 * time.Minute
	consumeWindow = 5 * time.Minute

	// SweepInterval is the interval on which expired records are cleaned up
	SweepInterval = 5 * time.Minute
)

// Notifier is used to deliver the verification code to an email address
type Notifier interface {
	Send(code string, email string) error
}

// Accounts is used to check wether an account already exists for an email address
type Accounts interface {
	Exists(email string) (bool, error)
}

// Record represents a single pending signup attempt
type Record struct {
	Email      string
	Code       string
	Name       string
	RollNo     string
	Password   string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Verified   bool
	VerifiedAt time.Time
}

// Pending contains the staged signup fields that are handed back on consumption
type Pending struct {
	Name     string
	RollNo   string
	Password string
}

// Registry is an in memory store of pending signup attempts keyed by the email
// address derived from the roll number; at most one live record exists per email
type Registry struct {
	Notifier Notifier
	Accounts Accounts
	Domain   string
	Now      func() time.Time

	mu      sync.Mutex
	records map[string]*Record
}

// NewRegistry is a function that is used to create a registry of pending signup attempts
func NewRegistry(notifier Notifier, accounts Accounts, domain string) *Registry {
	return &Registry{
		Notifier: notifier,
		Accounts: accounts,
		Domain:   domain,
		Now:      time.Now,
		records:  make(map[string]*Record),
	}
}

// DeriveEmail is a function that is used to derive the institutional email address from the roll number
func (r *Registry) DeriveEmail(rollNo string) string {
	return rollNo + r.Domain
}

// Issue is a function that is used to generate a verification code, send it to the
// derived email address and stage the signup fields until the code is consumed;
// when the send fails nothing is stored
func (r *Registry) Issue(rollNo, name, password string) error {
	if rollNo == "" || name == "" || password == "" {
		return errors.ErrAllFieldsRequired
	}

	email := r.DeriveEmail(rollNo)

	exists, err := r.Accounts.Exists(email)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrUserAlreadyExists
	}

	code := generateCode()
	if err := r.Notifier.Send(code, email); err != nil {
		return errors.ErrOTPDeliveryFailed
	}

	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[email] = &Record{
		Email:     email,
		Code:      code,
		Name:      name,
		RollNo:    rollNo,
		Password:  password,
		CreatedAt: now,
		ExpiresAt: now.Add(codeValidity),
	}

	return nil
}

// VerifyCode is a function that is used to check the presented code against the
// stored record; a wrong code leaves the record in place so the user can retry
// until the code expires
func (r *Registry) VerifyCode(rollNo, code string) error {
	if rollNo == "" || code == "" {
		return errors.ErrAllFieldsRequired
	}

	email := r.DeriveEmail(rollNo)
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[email]
	if !ok {
		return errors.ErrOTPNotFound
	}

	if now.After(record.ExpiresAt) {
		delete(r.records, email)
		return errors.ErrOTPExpired
	}

	if record.Code != code {
		return errors.ErrOTPMismatch
	}

	record.Verified = true
	record.VerifiedAt = now

	return nil
}

// Consume is a function that is used to remove a verified record from the registry
// and hand back the staged signup fields; consumption must happen within the grace
// window that starts at verification
func (r *Registry) Consume(rollNo string) (*Pending, error) {
	if rollNo == "" {
		return nil, errors.ErrAllFieldsRequired
	}

	email := r.DeriveEmail(rollNo)
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[email]
	if !ok {
		return nil, errors.ErrOTPNotFound
	}

	if !record.Verified {
		return nil, errors.ErrOTPNotVerified
	}

	if now.After(record.VerifiedAt.Add(consumeWindow)) {
		delete(r.records, email)
		return nil, errors.ErrVerificationExpired
	}

	exists, err := r.Accounts.Exists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrUserAlreadyExists
	}

	delete(r.records, email)

	return &Pending{
		Name:     record.Name,
		RollNo:   record.RollNo,
		Password: record.Password,
	}, nil
}

// Sweep is a function that is used to remove every record that is past its expiry
func (r *Registry) Sweep() {
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for email, record := range r.records {
		if now.After(record.ExpiresAt) {
			delete(r.records, email)
		}
	}
}

// StartSweeper is a function that is used to run the sweep on a fixed interval
// until the stop channel is closed
func (r *Registry) StartSweeper(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
