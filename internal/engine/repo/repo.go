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

	"github.com/go-arcade/socd/pkg/database"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrInvitationAccepted = errors.New("invitation already accepted")
	ErrStaleInvitation    = errors.New("invitation is no longer pending")
)

// Repositories groups every repository bound to the same connection.
type Repositories struct {
	Invitation      IInvitationRepository
	User            IUserRepository
	UserRoleBinding IUserRoleBindingRepository
	Session         ISessionRepository
	Tx              ITransactor
}

// ITransactor runs fn in one database transaction. The Repositories handed to fn
// are bound to the transaction; the session registry is shared.
type ITransactor interface {
	Transaction(ctx context.Context, fn func(tx *Repositories) error) error
}

func NewRepositories(db database.IDatabase, session ISessionRepository) *Repositories {
	r := newDBRepositories(db)
	r.Session = session
	r.Tx = &gormTransactor{db: db, session: session}
	return r
}

func newDBRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Invitation:      NewInvitationRepo(db),
		User:            NewUserRepo(db),
		UserRoleBinding: NewUserRoleBindingRepo(db),
	}
}

type gormTransactor struct {
	db      database.IDatabase
	session ISessionRepository
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return t.db.Transaction(ctx, func(tx database.IDatabase) error {
		r := newDBRepositories(tx)
		r.Session = t.session
		r.Tx = &gormTransactor{db: tx, session: t.session}
		return fn(r)
	})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func Exist(tx *gorm.DB) (bool, error) {
	count, err := Count(tx.Limit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// translate maps gorm sentinels onto the package errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
