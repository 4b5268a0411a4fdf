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
	"github.com/go-arcade/socd/pkg/cache"
	"github.com/go-arcade/socd/pkg/database"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideSessionRepo,
	ProvideRepositories,
)

func ProvideSessionRepo(c cache.ICache, conf *httpx.Http) ISessionRepository {
	return NewSessionRepo(c, conf.Auth.RedisKeyPrefix)
}

func ProvideRepositories(db database.IDatabase, session ISessionRepository) *Repositories {
	return NewRepositories(db, session)
}
