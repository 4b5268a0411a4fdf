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

package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// IDatabase is the handle repositories query through. Every query is bound to
// the caller's context.
type IDatabase interface {
	Database() *gorm.DB
	Conn(ctx context.Context) *gorm.DB
	// Reader may be served by a replica when replicas are configured.
	Reader(ctx context.Context) *gorm.DB
	// Writer is pinned to the primary, for reads that must observe the latest write.
	Writer(ctx context.Context) *gorm.DB
	// Transaction runs fn against a handle bound to one transaction. Nested calls
	// reuse the enclosing transaction.
	Transaction(ctx context.Context, fn func(tx IDatabase) error) error
	Migrate(models ...any) error
}

type gormDatabase struct {
	db   *gorm.DB
	inTx bool
}

func NewDatabaseAdapter(manager Manager) IDatabase {
	return &gormDatabase{db: manager.DB()}
}

func (d *gormDatabase) Database() *gorm.DB {
	return d.db
}

func (d *gormDatabase) Conn(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

func (d *gormDatabase) Reader(ctx context.Context) *gorm.DB {
	if d.inTx {
		return d.Conn(ctx)
	}
	return d.Conn(ctx).Clauses(dbresolver.Read)
}

func (d *gormDatabase) Writer(ctx context.Context) *gorm.DB {
	if d.inTx {
		return d.Conn(ctx)
	}
	return d.Conn(ctx).Clauses(dbresolver.Write)
}

func (d *gormDatabase) Transaction(ctx context.Context, fn func(tx IDatabase) error) error {
	if d.inTx {
		return fn(d)
	}
	return d.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormDatabase{db: tx, inTx: true})
	})
}

func (d *gormDatabase) Migrate(models ...any) error {
	return d.db.AutoMigrate(models...)
}
