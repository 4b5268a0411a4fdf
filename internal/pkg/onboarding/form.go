// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/statemachine"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultCodeLength = 6
	minPasswordLength = 8
)

var (
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form holds the state of one signup attempt. Every failed submit leaves the
// step unchanged so the user can correct the input and try again.
type Form struct {
	api        API
	sm         *statemachine.StateMachine[statemachine.OnboardingStep]
	codeLength int

	email   string
	otp     string
	role    model.Role
	session *model.SessionResp
}

func NewForm(api API, codeLength int) *Form {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	return &Form{
		api:        api,
		sm:         statemachine.NewOnboardingStateMachine(),
		codeLength: codeLength,
	}
}

func (f *Form) Step() statemachine.OnboardingStep {
	return f.sm.Current()
}

func (f *Form) Email() string {
	return f.email
}

// Role is known once the code has been verified.
func (f *Form) Role() model.Role {
	return f.role
}

// Session is set once the account has been created.
func (f *Form) Session() *model.SessionResp {
	return f.session
}

func (f *Form) CodeLength() int {
	return f.codeLength
}

// SubmitEmail looks up the pending invitation for email and moves to the code step.
func (f *Form) SubmitEmail(ctx context.Context, email string) error {
	if err := f.require(statemachine.StepEmail); err != nil {
		return err
	}
	email = model.NormalizeEmail(email)
	if validate.Var(email, "required,email") != nil {
		return ErrInvalidEmail
	}
	if _, err := f.api.InvitationStatus(ctx, email); err != nil {
		return err
	}
	f.email = email
	return f.sm.TriggerEvent(statemachine.EventInvitationFound)
}

// SubmitOtp verifies code. An incomplete code is rejected without calling the server.
func (f *Form) SubmitOtp(ctx context.Context, code string) error {
	if err := f.require(statemachine.StepOtp); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if !f.completeCode(code) {
		return fmt.Errorf("Please enter the complete %d-digit code", f.codeLength)
	}
	resp, err := f.api.VerifyOtp(ctx, f.email, code)
	if err != nil {
		return err
	}
	f.otp = code
	f.role = resp.Role
	return f.sm.TriggerEvent(statemachine.EventOtpVerified)
}

// Resend asks for a new code. The step does not change.
func (f *Form) Resend(ctx context.Context) error {
	if err := f.require(statemachine.StepOtp); err != nil {
		return err
	}
	return f.api.ResendOtp(ctx, f.email)
}

// SubmitPassword creates the account with the verified code.
func (f *Form) SubmitPassword(ctx context.Context, password, confirm, fullName string) error {
	if err := f.require(statemachine.StepPassword); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	session, err := f.api.SignUp(ctx, &model.SignUpReq{
		Email:    f.email,
		Otp:      f.otp,
		Password: password,
		FullName: strings.TrimSpace(fullName),
	})
	if err != nil {
		return err
	}
	f.session = session
	return f.sm.TriggerEvent(statemachine.EventAccountCreated)
}

// Back returns to the previous step. Leaving the password step drops the verified
// code, so it has to be verified again.
func (f *Form) Back() error {
	if err := f.sm.TriggerEvent(statemachine.EventBack); err != nil {
		return err
	}
	f.otp = ""
	f.role = ""
	return nil
}

func (f *Form) require(step statemachine.OnboardingStep) error {
	if cur := f.sm.Current(); cur != step {
		return fmt.Errorf("action not available in step %s", cur)
	}
	return nil
}

func (f *Form) completeCode(code string) bool {
	if len(code) != f.codeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
