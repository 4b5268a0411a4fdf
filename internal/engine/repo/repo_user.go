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
)

type IUserRepository interface {
	// Create stores a new account. ErrDuplicate if the email or user id is taken.
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUserId(ctx context.Context, userId string) (*model.User, error)
	// List joins every account with its role binding, newest first.
	List(ctx context.Context) ([]model.UserInfo, error)
}

type UserRepo struct {
	db database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{db: db}
}

func (ur *UserRepo) Create(ctx context.Context, user *model.User) error {
	if err := ur.db.Conn(ctx).Create(user).Error; err != nil {
		if err = translate(err); err == ErrDuplicate {
			return err
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := ur.db.Conn(ctx).Where("email = ?", email).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *UserRepo) GetByUserId(ctx context.Context, userId string) (*model.User, error) {
	var user model.User
	err := ur.db.Conn(ctx).Where("user_id = ?", userId).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *UserRepo) List(ctx context.Context) ([]model.UserInfo, error) {
	var users []model.UserInfo
	err := ur.db.Reader(ctx).
		Table(model.User{}.TableName()+" u").
		Select("u.user_id, u.email, u.full_name, b.role, u.created_at").
		Joins("LEFT JOIN "+model.UserRoleBinding{}.TableName()+" b ON b.user_id = u.user_id").
		Order("u.created_at DESC, u.id DESC").
		Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
