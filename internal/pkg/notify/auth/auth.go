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

package auth

import (
	"errors"
	"net/smtp"
	"strings"

	"github.com/go-resty/resty/v2"
)

type AuthType string

const (
	AuthTypeAPIKey AuthType = "apikey" // HTTP mail API, bearer token
	AuthTypeSMTP   AuthType = "smtp"   // SMTP PLAIN login
)

// IAuthProvider is a credential for one mail transport.
type IAuthProvider interface {
	GetAuthType() AuthType
	Validate() error
	// String never reveals the secret.
	String() string
}

type APIKey struct {
	Key string
}

func NewAPIKey(key string) *APIKey {
	return &APIKey{Key: strings.TrimSpace(key)}
}

func (a *APIKey) GetAuthType() AuthType {
	return AuthTypeAPIKey
}

// Apply sets the bearer header on r.
func (a *APIKey) Apply(r *resty.Request) *resty.Request {
	return r.SetAuthToken(a.Key)
}

func (a *APIKey) Validate() error {
	if a.Key == "" {
		return errors.New("mail api key is required")
	}
	return nil
}

func (a *APIKey) String() string {
	return string(AuthTypeAPIKey) + ":" + mask(a.Key)
}

type SMTPLogin struct {
	Username string
	Password string
}

func NewSMTPLogin(username, password string) *SMTPLogin {
	return &SMTPLogin{Username: username, Password: password}
}

func (a *SMTPLogin) GetAuthType() AuthType {
	return AuthTypeSMTP
}

// SMTPAuth returns PLAIN auth bound to host. net/smtp refuses PLAIN over an
// unencrypted connection to anything but localhost.
func (a *SMTPLogin) SMTPAuth(host string) smtp.Auth {
	return smtp.PlainAuth("", a.Username, a.Password, host)
}

func (a *SMTPLogin) Validate() error {
	if a.Username == "" {
		return errors.New("smtp username is required")
	}
	if a.Password == "" {
		return errors.New("smtp password is required")
	}
	return nil
}

func (a *SMTPLogin) String() string {
	return string(AuthTypeSMTP) + ":" + a.Username + ":" + mask(a.Password)
}

// mask keeps the last four characters of long secrets.
func mask(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
