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
	"fmt"
	"time"

	"github.com/go-arcade/socd/internal/pkg/notify/channel"
	"github.com/go-arcade/socd/internal/pkg/notify/template"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
)

// InvitationMail carries the data of the first invitation email.
type InvitationMail struct {
	To          string
	InviterName string
	Role        string
	Code        string
	ExpiresIn   time.Duration
	Link        string
}

// OtpMail carries a replacement code.
type OtpMail struct {
	To        string
	Code      string
	ExpiresIn time.Duration
}

// Mailer renders onboarding templates and hands them to one delivery channel.
type Mailer struct {
	from    string
	channel channel.INotifyChannel
	engine  *template.TemplateEngine
	metrics *metrics.Onboarding
}

func NewMailer(from string, ch channel.INotifyChannel, m *metrics.Onboarding) (*Mailer, error) {
	if ch == nil {
		return nil, fmt.Errorf("channel cannot be nil")
	}
	if err := ch.Validate(); err != nil {
		return nil, fmt.Errorf("channel validation failed: %w", err)
	}
	engine, err := template.NewTemplateEngine(template.PredefinedTemplates...)
	if err != nil {
		return nil, err
	}
	return &Mailer{from: from, channel: ch, engine: engine, metrics: m}, nil
}

func (m *Mailer) SendInvitation(ctx context.Context, mail InvitationMail) error {
	return m.send(ctx, template.InvitationTemplateID, mail.To, map[string]any{
		"InviterName":      mail.InviterName,
		"Role":             mail.Role,
		"Code":             mail.Code,
		"ExpiresInMinutes": int(mail.ExpiresIn.Minutes()),
		"Link":             mail.Link,
	})
}

func (m *Mailer) SendOtp(ctx context.Context, mail OtpMail) error {
	return m.send(ctx, template.OtpResendTemplateID, mail.To, map[string]any{
		"Code":             mail.Code,
		"ExpiresInMinutes": int(mail.ExpiresIn.Minutes()),
	})
}

func (m *Mailer) send(ctx context.Context, templateId, to string, data map[string]any) error {
	subject, html, err := m.engine.Render(templateId, data)
	if err != nil {
		m.observe(templateId, "render_error")
		return err
	}

	err = m.channel.Send(ctx, &channel.Message{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		m.observe(templateId, "failed")
		log.Errorw("email delivery failed", "template", templateId, "to", to, "error", err)
		return err
	}
	m.observe(templateId, "sent")
	log.Infow("email delivered", "template", templateId, "to", to)
	return nil
}

func (m *Mailer) observe(templateId, outcome string) {
	if m.metrics != nil {
		m.metrics.EmailsSent.WithLabelValues(templateId, outcome).Inc()
	}
}

func (m *Mailer) Close() error {
	return m.channel.Close()
}
