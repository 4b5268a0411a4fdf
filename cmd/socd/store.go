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

package main

import (
	"fmt"

	"github.com/go-arcade/socd/internal/engine/config"
	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/repo"
	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// store is the database-only wiring used by the maintenance commands. It has
// no session registry and no mailer, so only admin seeding and listings work.
type store struct {
	conf     *config.AppConfig
	services *service.Services
}

func newStore(appConf *config.AppConfig, db database.IDatabase) (*store, error) {
	if appConf.Database.AutoMigrate {
		if err := db.Migrate(model.All()...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Debugw("database schema migrated", "type", appConf.Database.Type)
	}

	repos := repo.NewRepositories(db, nil)
	services := service.NewServices(
		&appConf.Onboarding,
		&appConf.Vlm,
		appConf.Http.Auth,
		repos,
		nil,
		metrics.NewOnboarding(prometheus.NewRegistry()),
	)
	return &store{conf: appConf, services: services}, nil
}
