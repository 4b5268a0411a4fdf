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

package repo

import (
	"testing"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/cache"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.IDatabase {
	t.Helper()
	m, err := database.NewManager(database.Database{
		Type:   database.TypeSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	db := database.NewDatabaseAdapter(m)
	require.NoError(t, db.Migrate(model.All()...))
	return db
}

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(newTestDB(t), NewSessionRepo(cache.NewMemoryCache(), "test:session:"))
}

func pendingInvitation(email, code string, expiresAt time.Time) *model.Invitation {
	return &model.Invitation{
		InvitationId: "inv-" + email,
		Email:        email,
		Role:         model.RoleOperator,
		OtpCode:      code,
		OtpExpiresAt: expiresAt,
		InvitedBy:    "admin-1",
	}
}
