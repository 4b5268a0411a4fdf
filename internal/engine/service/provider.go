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
	"github.com/go-arcade/socd/internal/pkg/notify"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideServices,
)

func ProvideServices(
	onboarding *OnboardingConf,
	vlm *VlmConf,
	httpConf *httpx.Http,
	repos *repo.Repositories,
	mailer *notify.Mailer,
	m *metrics.Onboarding,
) *Services {
	return NewServices(onboarding, vlm, httpConf.Auth, repos, mailer, m)
}
