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

package conf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Http struct {
		Port int
		Auth struct {
			SecretKey string
		}
	}
	Mail struct {
		From string
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[http]
port = 8080

[http.auth]
secretKey = "from-file"

[mail]
from = "noreply@x.com"
`)
	t.Setenv("CONFTEST_HTTP_PORT", "9999")

	var cfg sample
	_, err := Load(path, "CONFTEST", &cfg)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Http.Port)
	assert.Equal(t, "from-file", cfg.Http.Auth.SecretKey)
	assert.Equal(t, "noreply@x.com", cfg.Mail.From)
}

func TestLoadErrors(t *testing.T) {
	var cfg sample
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "", &cfg)
	assert.Error(t, err)

	path := writeConfig(t, "[http]\nport = 1\n")
	_, err = Load(path, "", cfg)
	assert.EqualError(t, err, "cfg must be a pointer")
}

func TestDumpRedactsSecrets(t *testing.T) {
	path := writeConfig(t, `
[http.auth]
secretKey = "super-secret"

[mail.resend]
apiKey = "re_123"
baseUrl = "https://api.resend.com"
`)
	var cfg sample
	vCfg, err := Load(path, "", &cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, vCfg))
	out := buf.String()
	assert.NotContains(t, out, "super-secret")
	assert.NotContains(t, out, "re_123")
	assert.Contains(t, out, redacted)
	assert.Contains(t, out, "https://api.resend.com")
}
