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
	"errors"
	"fmt"
	"sync"

	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/cache"
	"github.com/go-arcade/socd/pkg/conf"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-arcade/socd/pkg/pprof"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SOCD_HTTP_PORT.
const EnvPrefix = "SOCD"

type JobConfig struct {
	// PendingGaugeSpec is the cron spec of the pending invitations gauge refresh.
	PendingGaugeSpec string
}

type AppConfig struct {
	Log        log.Conf
	Http       http.Http
	Database   database.Database
	Redis      cache.Redis
	Metrics    metrics.MetricsConfig
	Pprof      pprof.PprofConfig
	Mail       notify.Conf
	Onboarding service.OnboardingConf
	Vlm        service.VlmConf
	Job        JobConfig

	viper *viper.Viper
	mu    sync.Mutex
}

// LoadConfigFile reads, defaults and validates the configuration at path.
func LoadConfigFile(path string) (*AppConfig, error) {
	cfg := new(AppConfig)
	v, err := conf.Load(path, EnvPrefix, cfg)
	if err != nil {
		return nil, err
	}
	cfg.viper = v
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return cfg, nil
}

func (c *AppConfig) SetDefaults() {
	setLogDefaults(&c.Log)
	c.Http.SetDefaults()
	c.Database.SetDefaults()
	c.Redis.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pprof.SetDefaults()
	c.Mail.SetDefaults()
	c.Onboarding.SetDefaults()
	c.Vlm.SetDefaults()
	if c.Job.PendingGaugeSpec == "" {
		c.Job.PendingGaugeSpec = "@every 1m"
	}
}

func (c *AppConfig) Validate() error {
	return errors.Join(
		c.Log.Validate(),
		c.Http.Validate(),
		c.Database.Validate(),
		c.Mail.Validate(),
		c.Onboarding.Validate(),
	)
}

// Watch follows the file for changes. Only the log level is applied live; every
// other section needs a restart.
func (c *AppConfig) Watch() {
	if c.viper == nil {
		return
	}
	conf.Watch(c.viper, func(next *AppConfig) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if next.Log.Level != "" && next.Log.Level != c.Log.Level {
			log.SetLevel(next.Log.Level)
			log.Infow("log level changed", "from", c.Log.Level, "to", next.Log.Level)
			c.Log.Level = next.Log.Level
		}
	})
}

// Viper returns the loader behind c, or nil when c was built in code.
func (c *AppConfig) Viper() *viper.Viper {
	return c.viper
}

func setLogDefaults(c *log.Conf) {
	d := log.SetDefaults()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Path == "" {
		c.Path = d.Path
	}
	if c.Filename == "" {
		c.Filename = d.Filename
	}
	if c.Level == "" {
		c.Level = d.Level
	}
}
