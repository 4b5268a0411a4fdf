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
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/repo"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/database"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	adminId    = "admin-1"
	operatorId = "operator-1"
)

type fakeMailer struct {
	mu          sync.Mutex
	invitations []notify.InvitationMail
	otps        []notify.OtpMail
	err         error
}

func (m *fakeMailer) SendInvitation(_ context.Context, mail notify.InvitationMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.invitations = append(m.invitations, mail)
	return nil
}

func (m *fakeMailer) SendOtp(_ context.Context, mail notify.OtpMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.otps = append(m.otps, mail)
	return nil
}

func (m *fakeMailer) lastInvitation() notify.InvitationMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invitations[len(m.invitations)-1]
}

func (m *fakeMailer) lastOtp() notify.OtpMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.otps[len(m.otps)-1]
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*model.Session{}}
}

func (f *fakeSessions) Save(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.UserId+":"+s.TokenId] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userId, tokenId string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[userId+":"+tokenId]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) Exists(ctx context.Context, userId, tokenId string) (bool, error) {
	_, err := f.Get(ctx, userId, tokenId)
	return err == nil, nil
}

func (f *fakeSessions) Revoke(_ context.Context, userId, tokenId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, userId+":"+tokenId)
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userId string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k, s := range f.sessions {
		if s.UserId == userId {
			delete(f.sessions, k)
			n++
		}
	}
	return n, nil
}

type fixture struct {
	ctx     context.Context
	svc     *Services
	repos   *repo.Repositories
	mailer  *fakeMailer
	metrics *metrics.Onboarding
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, err := database.NewManager(database.Database{
		Type:   database.TypeSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	db := database.NewDatabaseAdapter(m)
	require.NoError(t, db.Migrate(model.All()...))

	f := &fixture{
		ctx:     context.Background(),
		repos:   repo.NewRepositories(db, newFakeSessions()),
		mailer:  &fakeMailer{},
		metrics: metrics.NewOnboarding(prometheus.NewRegistry()),
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	auth := httpx.Auth{SecretKey: "test-secret-key-0123456789", AccessExpire: time.Hour}
	f.svc = NewServices(
		(&OnboardingConf{AppUrl: "https://soc.example.com/"}).SetDefaults(),
		(&VlmConf{}).SetDefaults(),
		auth, f.repos, f.mailer, f.metrics,
	)
	f.svc.Invitation.now = func() time.Time { return f.now }

	f.seedUser(t, adminId, "root@x.com", model.RoleAdmin)
	f.seedUser(t, operatorId, "op@x.com", model.RoleOperator)
	return f
}

func (f *fixture) seedUser(t *testing.T, userId, email string, role model.Role) {
	t.Helper()
	require.NoError(t, f.repos.User.Create(f.ctx, &model.User{UserId: userId, Email: email, Password: "x", IsEnabled: 1}))
	require.NoError(t, f.repos.UserRoleBinding.Bind(f.ctx, userId, role, nil))
}

// invite issues an invitation and pins its code so tests do not depend on randomness.
func (f *fixture) invite(t *testing.T, email string, role model.Role, code string) *model.Invitation {
	t.Helper()
	_, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{Email: email, Role: string(role)})
	require.NoError(t, err)
	inv, err := f.repos.Invitation.GetPendingByEmail(f.ctx, model.NormalizeEmail(email))
	require.NoError(t, err)
	require.NoError(t, f.repos.Invitation.UpdateOtp(f.ctx, inv.InvitationId, code, inv.OtpExpiresAt))
	inv.OtpCode = code
	return inv
}

func requireServiceError(t *testing.T, err error, want *Error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, want), "got %v, want %v", err, want)
	got := AsError(err)
	require.NotNil(t, got)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.Msg, got.Msg)
}
