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

// Package onboarding is the invited user's side of the signup flow: an HTTP client
// for the onboarding endpoints and the form state machine driving it.
package onboarding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer. Message is the server's {error} text, unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// API is the set of calls the form makes.
type API interface {
	InvitationStatus(ctx context.Context, email string) (*model.InvitationStatusResp, error)
	VerifyOtp(ctx context.Context, email, otp string) (*model.VerifyOtpResp, error)
	ResendOtp(ctx context.Context, email string) error
	SignUp(ctx context.Context, req *model.SignUpReq) (*model.SessionResp, error)
}

type Client struct {
	http *resty.Client
}

// NewClient talks to the API rooted at baseURL, including the context path,
// e.g. http://localhost:8080/api/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{http: httpx.NewClient(baseURL, timeout)}
}

func (c *Client) InvitationStatus(ctx context.Context, email string) (*model.InvitationStatusResp, error) {
	out := new(model.InvitationStatusResp)
	if err := c.post(ctx, "/invitation-status", model.InvitationStatusReq{Email: email}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) VerifyOtp(ctx context.Context, email, otp string) (*model.VerifyOtpResp, error) {
	out := new(model.VerifyOtpResp)
	if err := c.post(ctx, "/verify-otp", model.VerifyOtpReq{Email: email, Otp: otp}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ResendOtp(ctx context.Context, email string) error {
	return c.post(ctx, "/resend-otp", model.ResendOtpReq{Email: email}, &httpx.Response{})
}

func (c *Client) SignUp(ctx context.Context, req *model.SignUpReq) (*model.SessionResp, error) {
	out := new(model.SessionResp)
	if err := c.post(ctx, "/auth/signup", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	failure := new(httpx.ResponseErr)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(failure).
		Post(path)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	if resp.IsError() {
		msg := failure.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
