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

package channel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		From:    "SOC Dashboard <onboarding@resend.dev>",
		To:      []string{"alice@x.com"},
		Subject: "You've been invited to SOC Dashboard",
		HTML:    "<p>012345</p>",
	}
}

func TestResendChannel_Send(t *testing.T) {
	var (
		gotAuth string
		gotKey  string
		gotBody resendPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		data, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	ch := NewResendChannel(srv.URL, "re_test", time.Second)
	require.NoError(t, ch.Send(context.Background(), testMessage()))

	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Len(t, gotKey, 26)
	assert.Equal(t, []string{"alice@x.com"}, gotBody.To)
	assert.Equal(t, "<p>012345</p>", gotBody.HTML)
}

func TestResendChannel_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode":403,"name":"validation_error","message":"domain not verified"}`))
	}))
	defer srv.Close()

	err := NewResendChannel(srv.URL, "re_test", time.Second).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain not verified")
}

func TestResendChannel_MissingKey(t *testing.T) {
	err := NewResendChannel("", "", time.Second).Send(context.Background(), testMessage())
	assert.Error(t, err)
}

func TestMessage_Validate(t *testing.T) {
	m := testMessage()
	require.NoError(t, m.Validate())

	m.To = []string{"not-an-email"}
	assert.Error(t, m.Validate())

	m = testMessage()
	m.Subject = ""
	assert.Error(t, m.Validate())
}

func TestEmailChannel_Send(t *testing.T) {
	ch := NewEmailChannel("smtp.example.com", 587, "user", "secret")

	var (
		gotAddr string
		gotFrom string
		gotMsg  string
	)
	ch.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotMsg = addr, from, string(msg)
		assert.NotNil(t, a)
		assert.Equal(t, []string{"alice@x.com"}, to)
		return nil
	}
	require.NoError(t, ch.Send(context.Background(), testMessage()))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "onboarding@resend.dev", gotFrom)
	assert.True(t, strings.Contains(gotMsg, "Content-Type: text/html"))
	assert.True(t, strings.HasSuffix(gotMsg, "<p>012345</p>"))

	ch.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }
	assert.ErrorContains(t, ch.Send(context.Background(), testMessage()), "connection refused")
}

func TestEmailChannel_Validate(t *testing.T) {
	assert.Error(t, NewEmailChannel("", 25, "", "").Validate())
	assert.Error(t, NewEmailChannel("smtp", 25, "user", "").Validate())
	assert.NoError(t, NewEmailChannel("smtp", 25, "", "").Validate())
}

func TestLogChannel_Send(t *testing.T) {
	assert.NoError(t, NewLogChannel().Send(context.Background(), testMessage()))
}
