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
	"fmt"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/database"
	"github.com/go-arcade/socd/pkg/id"
	"gorm.io/gorm/clause"
)

type IUserRoleBindingRepository interface {
	// GetRole returns the role bound to the user, ErrNotFound if none.
	GetRole(ctx context.Context, userId string) (model.Role, error)
	// Bind sets the user's role, replacing any previous binding.
	Bind(ctx context.Context, userId string, role model.Role, grantedBy *string) error
}

type UserRoleBindingRepo struct {
	db database.IDatabase
}

func NewUserRoleBindingRepo(db database.IDatabase) IUserRoleBindingRepository {
	return &UserRoleBindingRepo{db: db}
}

func (r *UserRoleBindingRepo) GetRole(ctx context.Context, userId string) (model.Role, error) {
	var binding model.UserRoleBinding
	err := r.db.Conn(ctx).Select("role").
		Where("user_id = ?", userId).Take(&binding).Error
	if err != nil {
		return "", translate(err)
	}
	return binding.Role, nil
}

func (r *UserRoleBindingRepo) Bind(ctx context.Context, userId string, role model.Role, grantedBy *string) error {
	binding := &model.UserRoleBinding{
		BindingId: id.GetUUIDWithoutDashes(),
		UserId:    userId,
		Role:      role,
		GrantedBy: grantedBy,
	}
	err := r.db.Conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "granted_by", "update_time"}),
	}).Create(binding).Error
	if err != nil {
		return fmt.Errorf("bind role %s to %s: %w", role, userId, err)
	}
	return nil
}
