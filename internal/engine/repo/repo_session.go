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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/cache"
)

// ISessionRepository is the allow-list of issued access tokens.
type ISessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, userId, tokenId string) (*model.Session, error)
	Exists(ctx context.Context, userId, tokenId string) (bool, error)
	Revoke(ctx context.Context, userId, tokenId string) error
	// RevokeAll drops every live session of the user.
	RevokeAll(ctx context.Context, userId string) (int, error)
}

type SessionRepo struct {
	cache     cache.ICache
	keyPrefix string
}

func NewSessionRepo(c cache.ICache, keyPrefix string) ISessionRepository {
	return &SessionRepo{cache: c, keyPrefix: keyPrefix}
}

func (sr *SessionRepo) key(userId, tokenId string) string {
	return sr.keyPrefix + userId + ":" + tokenId
}

func (sr *SessionRepo) Save(ctx context.Context, session *model.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.TokenId)
	}
	data, err := sonic.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := sr.cache.SetTTL(ctx, sr.key(session.UserId, session.TokenId), data, ttl); err != nil {
		return fmt.Errorf("save session %s: %w", session.TokenId, err)
	}
	return nil
}

func (sr *SessionRepo) Get(ctx context.Context, userId, tokenId string) (*model.Session, error) {
	data, err := sr.cache.Get(ctx, sr.key(userId, tokenId))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", tokenId, err)
	}
	var session model.Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", tokenId, err)
	}
	return &session, nil
}

func (sr *SessionRepo) Exists(ctx context.Context, userId, tokenId string) (bool, error) {
	ok, err := sr.cache.Exists(ctx, sr.key(userId, tokenId))
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenId, err)
	}
	return ok, nil
}

func (sr *SessionRepo) Revoke(ctx context.Context, userId, tokenId string) error {
	if _, err := sr.cache.Delete(ctx, sr.key(userId, tokenId)); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenId, err)
	}
	return nil
}

func (sr *SessionRepo) RevokeAll(ctx context.Context, userId string) (int, error) {
	keys, err := sr.cache.Keys(ctx, sr.key(userId, ""))
	if err != nil {
		return 0, fmt.Errorf("list sessions of %s: %w", userId, err)
	}
	n, err := sr.cache.Delete(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions of %s: %w", userId, err)
	}
	return int(n), nil
}
