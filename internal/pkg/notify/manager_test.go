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

package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-arcade/socd/internal/pkg/notify/channel"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	sent []*channel.Message
	err  error
}

func (c *recordingChannel) Send(_ context.Context, msg *channel.Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *recordingChannel) Validate() error { return nil }
func (c *recordingChannel) Close() error    { return nil }

func newTestMailer(t *testing.T, ch channel.INotifyChannel) (*Mailer, *metrics.Onboarding) {
	t.Helper()
	m := metrics.NewOnboarding(prometheus.NewRegistry())
	mailer, err := NewMailer("SOC Dashboard <onboarding@resend.dev>", ch, m)
	require.NoError(t, err)
	return mailer, m
}

func TestMailer_SendInvitation(t *testing.T) {
	ch := &recordingChannel{}
	mailer, m := newTestMailer(t, ch)

	err := mailer.SendInvitation(context.Background(), InvitationMail{
		To:        "alice@x.com",
		Role:      "operator",
		Code:      "004217",
		ExpiresIn: 30 * time.Minute,
		Link:      "https://soc.example.com/auth",
	})
	require.NoError(t, err)

	require.Len(t, ch.sent, 1)
	msg := ch.sent[0]
	assert.Equal(t, []string{"alice@x.com"}, msg.To)
	assert.Equal(t, "You've been invited to SOC Dashboard", msg.Subject)
	assert.Contains(t, msg.HTML, "004217")
	assert.Contains(t, msg.HTML, "30 minutes")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("invitation", "sent")))
}

func TestMailer_SendOtpFailure(t *testing.T) {
	ch := &recordingChannel{err: errors.New("provider down")}
	mailer, m := newTestMailer(t, ch)

	err := mailer.SendOtp(context.Background(), OtpMail{To: "alice@x.com", Code: "123456", ExpiresIn: 30 * time.Minute})
	assert.ErrorContains(t, err, "provider down")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("otp_resend", "failed")))
}

func TestConf_Validate(t *testing.T) {
	c := (&Conf{}).SetDefaults()
	assert.Equal(t, ChannelTypeResend, c.Provider)
	assert.Error(t, c.Validate())

	c.Resend.ApiKey = "re_test"
	assert.NoError(t, c.Validate())

	assert.NoError(t, (&Conf{Provider: ChannelTypeLog}).Validate())
	assert.Error(t, (&Conf{Provider: "pigeon"}).Validate())
}
