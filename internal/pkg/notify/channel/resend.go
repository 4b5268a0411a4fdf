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
	"time"

	"github.com/go-arcade/socd/internal/pkg/notify/auth"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/id"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-resty/resty/v2"
)

const DefaultResendBaseURL = "https://api.resend.com"

// ResendChannel posts emails to the Resend HTTP API.
type ResendChannel struct {
	key    *auth.APIKey
	client *resty.Client
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResult struct {
	Id string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func NewResendChannel(baseURL, apiKey string, timeout time.Duration) *ResendChannel {
	if baseURL == "" {
		baseURL = DefaultResendBaseURL
	}
	return &ResendChannel{
		key:    auth.NewAPIKey(apiKey),
		client: httpx.NewClient(baseURL, timeout),
	}
}

func (c *ResendChannel) Send(ctx context.Context, msg *Message) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	result := new(resendResult)
	apiErr := new(resendError)
	resp, err := c.key.Apply(c.client.R()).
		SetContext(ctx).
		SetHeader("Idempotency-Key", id.GetUlid()).
		SetBody(resendPayload{From: msg.From, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}).
		SetResult(result).
		SetError(apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to call resend: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("resend rejected email: %d %s: %s", resp.StatusCode(), apiErr.Name, apiErr.Message)
		}
		return fmt.Errorf("resend rejected email: %s", resp.Status())
	}

	log.Debugw("email accepted by resend", "id", result.Id, "subject", msg.Subject)
	return nil
}

func (c *ResendChannel) Validate() error {
	return c.key.Validate()
}

func (c *ResendChannel) Close() error {
	return nil
}
