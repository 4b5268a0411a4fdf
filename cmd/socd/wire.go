//go:build wireinject
// +build wireinject

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
	"github.com/go-arcade/socd/internal/engine/bootstrap"
	"github.com/go-arcade/socd/internal/engine/config"
	"github.com/go-arcade/socd/internal/engine/repo"
	"github.com/go-arcade/socd/internal/engine/router"
	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/cache"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-arcade/socd/pkg/pprof"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		log.ProviderSet,
		database.ProviderSet,
		cache.ProviderSet,
		metrics.ProviderSet,
		pprof.ProviderSet,
		repo.ProviderSet,
		notify.ProviderSet,
		service.ProviderSet,
		router.ProviderSet,
		bootstrap.NewApp,
	))
}

func initStore(configPath string) (*store, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		log.ProviderSet,
		database.ProviderSet,
		newStore,
	))
}
