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

	"github.com/go-arcade/socd/pkg/log"
)

// LogChannel writes messages to the application log instead of delivering them.
// Local development only: the body, including any code, ends up in the log.
type LogChannel struct{}

func NewLogChannel() *LogChannel {
	return &LogChannel{}
}

func (c *LogChannel) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	log.Infow("email not delivered, log channel", "to", msg.To, "subject", msg.Subject, "html", msg.HTML)
	return nil
}

func (c *LogChannel) Validate() error {
	return nil
}

func (c *LogChannel) Close() error {
	return nil
}
