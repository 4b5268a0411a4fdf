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

type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id;type:varchar(32);not null;uniqueIndex" json:"userId"`
	Email     string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	FullName  string `gorm:"column:full_name;type:varchar(128)" json:"fullName"`
	Password  string `gorm:"column:password;type:varchar(128);not null" json:"-"` // bcrypt hash
	IsEnabled int    `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`  // 0: disabled, 1: enabled
}

func (User) TableName() string {
	return "t_user"
}

type SignUpReq struct {
	Email    string `json:"email"`
	Otp      string `json:"otp"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResp is returned by signup and login.
type SessionResp struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	UserId      string    `json:"user_id"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserInfo struct {
	UserId    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UserListResp struct {
	Users []UserInfo `json:"users"`
}

// Session is what the session registry stores per issued token.
type Session struct {
	UserId    string    `json:"userId"`
	TokenId   string    `json:"tokenId"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
