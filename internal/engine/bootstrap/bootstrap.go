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

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/socd/internal/engine/config"
	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/router"
	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-arcade/socd/pkg/pprof"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const jobTimeout = 10 * time.Second

type App struct {
	HttpApp       *fiber.App
	AppConf       *config.AppConfig
	Services      *service.Services
	MetricsServer *metrics.Server
	PprofServer   *pprof.Server
}

// InitAppFunc builds the App and a cleanup releasing what it opened.
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	appConf *config.AppConfig,
	services *service.Services,
	metricsServer *metrics.Server,
	pprofServer *pprof.Server,
	db database.IDatabase,
	_ *zap.Logger,
) (*App, error) {
	if appConf.Database.AutoMigrate {
		if err := db.Migrate(model.All()...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Infow("database schema migrated", "type", appConf.Database.Type)
	}

	return &App{
		HttpApp:       rt.Router(),
		AppConf:       appConf,
		Services:      services,
		MetricsServer: metricsServer,
		PprofServer:   pprofServer,
	}, nil
}

// Run serves until SIGINT or SIGTERM, or until a listener fails, then shuts
// everything down within the configured timeout.
func Run(app *App, cleanup func()) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.AppConf.Watch()

	scheduler, err := app.schedule()
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := app.AppConf.Http.Addr()
		log.Infow("HTTP listener started", "address", addr, "contextPath", app.AppConf.Http.ContextPath)
		if err := app.HttpApp.Listen(addr); err != nil {
			return fmt.Errorf("http listener %s: %w", addr, err)
		}
		return nil
	})
	g.Go(app.MetricsServer.Serve)
	g.Go(app.PprofServer.Serve)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down gracefully...")
		timeout := time.Duration(app.AppConf.Http.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return errors.Join(
			app.HttpApp.ShutdownWithContext(shutdownCtx),
			app.MetricsServer.Stop(shutdownCtx),
			app.PprofServer.Stop(shutdownCtx),
		)
	})

	err = g.Wait()
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		log.Errorw("server stopped with error", "error", err)
		return err
	}
	log.Info("server shutdown complete")
	return nil
}

// schedule registers the background jobs. The gauge is refreshed once right away
// so it is meaningful before the first tick.
func (app *App) schedule() (*cron.Cron, error) {
	c := cron.New()
	spec := app.AppConf.Job.PendingGaugeSpec
	if err := c.AddFunc(spec, app.refreshPendingGauge); err != nil {
		return nil, fmt.Errorf("invalid job.pendingGaugeSpec %q: %w", spec, err)
	}
	app.refreshPendingGauge()
	return c, nil
}

func (app *App) refreshPendingGauge() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := app.Services.Invitation.RefreshPendingGauge(ctx)
	if err != nil {
		log.Warnw("refresh pending invitations gauge failed", "error", err)
		return
	}
	log.Debugw("pending invitations gauge refreshed", "pending", n)
}
