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
	"testing"

	"github.com/go-arcade/socd/internal/engine/config"
	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/repo"
	"github.com/go-arcade/socd/internal/engine/router"
	"github.com/go-arcade/socd/internal/engine/service"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-arcade/socd/pkg/pprof"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopMailer struct{}

func (noopMailer) SendInvitation(context.Context, notify.InvitationMail) error { return nil }

func (noopMailer) SendOtp(context.Context, notify.OtpMail) error { return nil }

func newTestApp(t *testing.T, spec string) (*App, *metrics.Onboarding, database.IDatabase) {
	t.Helper()
	m, err := database.NewManager(database.Database{
		Type:   database.TypeSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	db := database.NewDatabaseAdapter(m)

	appConf := &config.AppConfig{}
	appConf.Http.Auth.SecretKey = "bootstrap-test-secret"
	appConf.Database.Type = database.TypeSQLite
	appConf.Database.AutoMigrate = true
	appConf.Mail.Provider = "log"
	appConf.SetDefaults()
	appConf.Job.PendingGaugeSpec = spec

	metricsServer := metrics.NewServer(appConf.Metrics)
	onboarding := metrics.NewOnboarding(metricsServer.Registry())
	services := service.NewServices(
		&appConf.Onboarding, &appConf.Vlm, appConf.Http.Auth,
		repo.NewRepositories(db, nil), noopMailer{}, onboarding,
	)

	app, err := NewApp(
		router.NewRouter(&appConf.Http, services),
		appConf, services, metricsServer, pprof.NewServer(appConf.Pprof), db, nil,
	)
	require.NoError(t, err)
	return app, onboarding, db
}

func TestNewApp_AutoMigrate(t *testing.T) {
	app, _, db := newTestApp(t, "@every 1m")
	assert.NotNil(t, app.HttpApp)
	for _, table := range []any{&model.Invitation{}, &model.User{}, &model.UserRoleBinding{}} {
		assert.True(t, db.Database().Migrator().HasTable(table))
	}
}

func TestSchedule_RefreshesGauge(t *testing.T) {
	app, onboarding, db := newTestApp(t, "@every 1m")
	ctx := context.Background()
	require.NoError(t, db.Database().Create(&model.Invitation{
		InvitationId: "inv-1",
		Email:        "a@x.com",
		Role:         model.RoleViewer,
		OtpCode:      "123456",
		Status:       model.InvitationStatusPending,
	}).Error)

	c, err := app.schedule()
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, 1.0, testutil.ToFloat64(onboarding.PendingInvitations))

	n, err := app.Services.Invitation.RefreshPendingGauge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSchedule_InvalidSpec(t *testing.T) {
	app, _, _ := newTestApp(t, "every now and then")
	_, err := app.schedule()
	assert.ErrorContains(t, err, "job.pendingGaugeSpec")
}
