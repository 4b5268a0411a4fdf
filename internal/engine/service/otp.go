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
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GenerateOtp returns a uniformly random numeric code of the given length,
// zero padded.
func GenerateOtp(length int) (string, error) {
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// checkOtp applies the verification order: expiry first, then the code.
func checkOtp(inv *model.Invitation, submitted string, now time.Time) error {
	if inv.ExpiredAt(now) {
		return ErrOtpExpired
	}
	if subtle.ConstantTimeCompare([]byte(inv.OtpCode), []byte(submitted)) != 1 {
		return ErrInvalidOtp
	}
	return nil
}
