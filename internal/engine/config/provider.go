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

package config

import (
	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/cache"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-arcade/socd/pkg/pprof"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideLogConfig,
	ProvideHttpConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
	ProvideMailConfig,
	ProvideOnboardingConfig,
	ProvideVlmConfig,
)

func ProvideConf(configPath string) (*AppConfig, error) {
	return LoadConfigFile(configPath)
}

func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	return &appConf.Http
}

func ProvideDatabaseConfig(appConf *AppConfig) *database.Database {
	return &appConf.Database
}

func ProvideRedisConfig(appConf *AppConfig) *cache.Redis {
	return &appConf.Redis
}

func ProvideMetricsConfig(appConf *AppConfig) *metrics.MetricsConfig {
	return &appConf.Metrics
}

func ProvidePprofConfig(appConf *AppConfig) *pprof.PprofConfig {
	return &appConf.Pprof
}

func ProvideMailConfig(appConf *AppConfig) *notify.Conf {
	return &appConf.Mail
}

func ProvideOnboardingConfig(appConf *AppConfig) *service.OnboardingConf {
	return &appConf.Onboarding
}

func ProvideVlmConfig(appConf *AppConfig) *service.VlmConf {
	return &appConf.Vlm
}
