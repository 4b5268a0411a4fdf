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
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/go-arcade/socd/internal/pkg/notify/auth"
)

// EmailChannel delivers through an SMTP relay.
type EmailChannel struct {
	smtpHost     string
	smtpPort     int
	login        *auth.SMTPLogin
	sendMail     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailChannel(smtpHost string, smtpPort int, username, password string) *EmailChannel {
	c := &EmailChannel{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		sendMail: smtp.SendMail,
	}
	if username != "" {
		c.login = auth.NewSMTPLogin(username, password)
	}
	return c
}

func (c *EmailChannel) Send(ctx context.Context, msg *Message) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}

	var smtpAuth smtp.Auth
	if c.login != nil {
		smtpAuth = c.login.SMTPAuth(c.smtpHost)
	}

	addr := net.JoinHostPort(c.smtpHost, strconv.Itoa(c.smtpPort))
	if err := c.sendMail(addr, smtpAuth, from.Address, msg.To, buildMIME(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMIME(msg *Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.BEncoding.Encode("UTF-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

func (c *EmailChannel) Validate() error {
	if c.smtpHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.smtpPort <= 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.login != nil {
		return c.login.Validate()
	}
	return nil
}

func (c *EmailChannel) Close() error {
	return nil
}
