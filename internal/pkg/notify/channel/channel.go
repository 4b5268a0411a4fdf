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
	"net/mail"
)

// Message is one rendered email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

func (m *Message) Validate() error {
	if m.From == "" {
		return errors.New("from address is required")
	}
	if len(m.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	for _, to := range m.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return err
		}
	}
	if m.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

type INotifyChannel interface {
	// Send delivers the message or returns why it could not.
	Send(ctx context.Context, msg *Message) error
	// Validate validates the channel configuration
	Validate() error
	// Close closes the channel connection
	Close() error
}
