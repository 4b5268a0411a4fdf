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
	"github.com/go-arcade/socd/internal/engine/repo"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/metrics"
)

type Services struct {
	Invitation *InvitationService
	Identity   *IdentityService
	Vlm        *VlmService
}

func NewServices(
	onboarding *OnboardingConf,
	vlm *VlmConf,
	auth httpx.Auth,
	repos *repo.Repositories,
	mailer Mailer,
	m *metrics.Onboarding,
) *Services {
	invitationService := NewInvitationService(onboarding, repos, mailer, m)
	return &Services{
		Invitation: invitationService,
		Identity:   NewIdentityService(auth, repos, invitationService, m),
		Vlm:        NewVlmService(vlm, m),
	}
}
