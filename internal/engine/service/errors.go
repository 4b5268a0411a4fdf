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

package service

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure; the HTTP layer only looks at Status and Msg.
type ErrorKind string

const (
	KindAuthorization   ErrorKind = "authorization"
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindExpired         ErrorKind = "expired"
	KindInvalidCode     ErrorKind = "invalid_code"
	KindConflict        ErrorKind = "conflict"
	KindDependency      ErrorKind = "dependency"
	KindRateLimited     ErrorKind = "rate_limited"
	KindPaymentRequired ErrorKind = "payment_required"
)

// Error is a user-facing failure. Msg is safe to return to clients, Err is the
// internal cause and is only logged.
type Error struct {
	Kind   ErrorKind
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind and message, so wrapped copies of a
// sentinel still compare equal to it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

func newError(kind ErrorKind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Msg: msg}
}

func dependency(msg string, cause error) *Error {
	return &Error{Kind: KindDependency, Status: http.StatusInternalServerError, Msg: msg, Err: cause}
}

var (
	ErrUnauthorized       = newError(KindAuthorization, http.StatusUnauthorized, "Unauthorized")
	ErrNotAdmin           = newError(KindAuthorization, http.StatusForbidden, "Only admins can send invitations")
	ErrAdminRequired      = newError(KindAuthorization, http.StatusForbidden, "Admin access required")
	ErrInvalidCredentials = newError(KindAuthorization, http.StatusUnauthorized, "Invalid login credentials")
	ErrAccountDisabled    = newError(KindAuthorization, http.StatusForbidden, "Account is disabled")

	ErrIssueFieldsRequired  = newError(KindValidation, http.StatusBadRequest, "Email and role are required")
	ErrVerifyFieldsRequired = newError(KindValidation, http.StatusBadRequest, "Email and OTP are required")
	ErrEmailRequired        = newError(KindValidation, http.StatusBadRequest, "Email is required")
	ErrLoginFieldsRequired  = newError(KindValidation, http.StatusBadRequest, "Email and password are required")
	ErrInvalidEmail         = newError(KindValidation, http.StatusBadRequest, "Invalid email address")
	ErrInvalidRole          = newError(KindValidation, http.StatusBadRequest, "Invalid role")
	ErrPasswordTooShort     = newError(KindValidation, http.StatusBadRequest, "Password must be at least 8 characters")
	ErrCameraIdRequired     = newError(KindValidation, http.StatusBadRequest, "cameraId is required")
	ErrImageRequired        = newError(KindValidation, http.StatusBadRequest, "Either imageBase64 or imageUrl is required")
	ErrInvalidStatusFilter  = newError(KindValidation, http.StatusBadRequest, "Invalid status filter")

	ErrNoPendingInvitation = newError(KindNotFound, http.StatusNotFound, "No pending invitation found for this email")
	ErrUserNotFound        = newError(KindNotFound, http.StatusNotFound, "User not found")

	ErrOtpExpired = newError(KindExpired, http.StatusBadRequest, "OTP has expired. Please request a new invitation.")
	ErrInvalidOtp = newError(KindInvalidCode, http.StatusBadRequest, "Invalid OTP code")

	ErrAlreadyRegistered    = newError(KindConflict, http.StatusBadRequest, "This email has already been registered")
	ErrUserExists           = newError(KindConflict, http.StatusBadRequest, "User already registered")
	ErrInvitationNotPending = newError(KindConflict, http.StatusBadRequest, "Invitation is no longer pending")

	ErrRateLimited      = newError(KindRateLimited, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	ErrCreditsExhausted = newError(KindPaymentRequired, http.StatusPaymentRequired, "AI credits exhausted. Please add funds to continue.")
)

const (
	msgCreateInvitationFailed = "Failed to create invitation"
	msgInvitationNotDelivered = "Invitation saved but the email could not be delivered"
	msgGenerateOtpFailed      = "Failed to generate new OTP"
	msgOtpNotDelivered        = "New OTP saved but the email could not be delivered"
	msgInternal               = "Internal server error"
	msgAiNotConfigured        = "AI service not configured"
	msgAiFailed               = "AI analysis failed"
	msgAiInvalidResponse      = "Invalid AI response format"
)

// AsError extracts the user-facing error, or nil for unclassified failures.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
