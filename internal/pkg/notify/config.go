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
	"fmt"
	"time"
)

type ChannelType string

const (
	ChannelTypeResend ChannelType = "resend"
	ChannelTypeSMTP   ChannelType = "smtp"
	ChannelTypeLog    ChannelType = "log"
)

type ResendConf struct {
	ApiKey  string
	BaseUrl string
	Timeout time.Duration
}

type SMTPConf struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Conf selects the delivery channel for outgoing mail.
type Conf struct {
	Provider ChannelType
	From     string
	Resend   ResendConf
	SMTP     SMTPConf
}

func (c *Conf) SetDefaults() *Conf {
	if c.Provider == "" {
		c.Provider = ChannelTypeResend
	}
	if c.From == "" {
		c.From = "SOC Dashboard <onboarding@resend.dev>"
	}
	if c.Resend.Timeout <= 0 {
		c.Resend.Timeout = 10 * time.Second
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	return c
}

func (c *Conf) Validate() error {
	switch c.Provider {
	case ChannelTypeResend:
		if c.Resend.ApiKey == "" {
			return fmt.Errorf("mail.resend.apiKey is required for the resend provider")
		}
	case ChannelTypeSMTP:
		if c.SMTP.Host == "" {
			return fmt.Errorf("mail.smtp.host is required for the smtp provider")
		}
	case ChannelTypeLog:
	default:
		return fmt.Errorf("unknown mail provider %q", c.Provider)
	}
	return nil
}
