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
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func TestAPIKey(t *testing.T) {
	key := NewAPIKey("  re_1234567890abcd ")
	assert.NoError(t, key.Validate())
	assert.Equal(t, "apikey:****abcd", key.String())

	r := key.Apply(resty.New().R())
	assert.Equal(t, "re_1234567890abcd", r.Token)

	assert.EqualError(t, NewAPIKey(" ").Validate(), "mail api key is required")
}

func TestSMTPLogin(t *testing.T) {
	tests := []struct {
		name    string
		login   *SMTPLogin
		wantErr string
	}{
		{name: "complete", login: NewSMTPLogin("mailer", "secret")},
		{name: "no user", login: NewSMTPLogin("", "secret"), wantErr: "smtp username is required"},
		{name: "no password", login: NewSMTPLogin("mailer", ""), wantErr: "smtp password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.login.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, tt.login.SMTPAuth("smtp.example.com"))
		})
	}
	assert.Equal(t, "smtp:mailer:****", NewSMTPLogin("mailer", "secret").String())
}
