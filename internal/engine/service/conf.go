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

package service

import (
	"fmt"
	"strings"
	"time"
)

type OnboardingConf struct {
	AppUrl    string
	OtpTTL    time.Duration
	OtpLength int
}

func (c *OnboardingConf) SetDefaults() *OnboardingConf {
	if c.AppUrl == "" {
		c.AppUrl = "http://localhost:5173"
	}
	c.AppUrl = strings.TrimRight(c.AppUrl, "/")
	if c.OtpTTL <= 0 {
		c.OtpTTL = 30 * time.Minute
	}
	if c.OtpLength <= 0 {
		c.OtpLength = 6
	}
	return c
}

func (c *OnboardingConf) Validate() error {
	if c.OtpLength < 4 || c.OtpLength > 10 {
		return fmt.Errorf("onboarding.otpLength must be between 4 and 10, got %d", c.OtpLength)
	}
	return nil
}

// AuthLink is the onboarding entry point mailed to invitees.
func (c *OnboardingConf) AuthLink() string {
	return c.AppUrl + "/auth"
}

type VlmConf struct {
	GatewayUrl   string
	ApiKey       string
	Model        string
	ModelVersion string
	Timeout      time.Duration
}

func (c *VlmConf) SetDefaults() *VlmConf {
	if c.GatewayUrl == "" {
		c.GatewayUrl = "https://ai.gateway.lovable.dev/v1/chat/completions"
	}
	if c.Model == "" {
		c.Model = "google/gemini-2.5-pro"
	}
	if c.ModelVersion == "" {
		c.ModelVersion = c.Model[strings.LastIndex(c.Model, "/")+1:]
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
