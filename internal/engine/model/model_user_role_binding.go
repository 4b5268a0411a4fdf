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

package model

import "time"

// UserRoleBinding maps a user to its single application role.
type UserRoleBinding struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	BindingId  string    `gorm:"column:binding_id;type:varchar(32);not null;uniqueIndex" json:"bindingId"`
	UserId     string    `gorm:"column:user_id;type:varchar(32);not null;uniqueIndex" json:"userId"`
	Role       Role      `gorm:"column:role;type:varchar(16);not null;index" json:"role"`
	GrantedBy  *string   `gorm:"column:granted_by;type:varchar(64)" json:"grantedBy"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (UserRoleBinding) TableName() string {
	return "t_user_role_binding"
}
