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

import (
	"strings"
	"time"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
)

// Invitation is the one row per email granting a path to create an account.
type Invitation struct {
	BaseModel
	InvitationId string           `gorm:"column:invitation_id;type:varchar(36);not null;uniqueIndex" json:"id"`
	Email        string           `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Role         Role             `gorm:"column:role;type:varchar(16);not null" json:"role"`
	OtpCode      string           `gorm:"column:otp_code;type:varchar(16);not null" json:"-"`
	OtpExpiresAt time.Time        `gorm:"column:otp_expires_at;not null" json:"otp_expires_at"`
	Status       InvitationStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	InvitedBy    string           `gorm:"column:invited_by;type:varchar(64)" json:"invited_by"`
	EmailSentAt  *time.Time       `gorm:"column:email_sent_at" json:"email_sent_at"`
}

func (Invitation) TableName() string {
	return "t_invitation"
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// ExpiredAt reports whether the code is no longer usable at now. A code expiring
// exactly at now is expired.
func (i *Invitation) ExpiredAt(now time.Time) bool {
	return !now.Before(i.OtpExpiresAt)
}

// NormalizeEmail lowercases and trims, matching the unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type IssueInvitationReq struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	InviterName string `json:"inviterName"`
}

type IssueInvitationResp struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	InvitationId string `json:"invitation_id"`
}

type VerifyOtpReq struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type VerifyOtpResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Role    Role   `json:"role"`
	Email   string `json:"email"`
}

type ResendOtpReq struct {
	Email string `json:"email"`
}

type InvitationStatusReq struct {
	Email string `json:"email"`
}

type InvitationStatusResp struct {
	Success bool             `json:"success"`
	Email   string           `json:"email"`
	Status  InvitationStatus `json:"status"`
}

// InvitationView is the admin listing row. It never carries the code.
type InvitationView struct {
	Id           string           `json:"id"`
	Email        string           `json:"email"`
	Role         Role             `json:"role"`
	Status       InvitationStatus `json:"status"`
	OtpExpiresAt time.Time        `json:"otp_expires_at"`
	EmailSentAt  *time.Time       `json:"email_sent_at"`
	InvitedBy    string           `json:"invited_by"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (i *Invitation) View() InvitationView {
	return InvitationView{
		Id:           i.InvitationId,
		Email:        i.Email,
		Role:         i.Role,
		Status:       i.Status,
		OtpExpiresAt: i.OtpExpiresAt,
		EmailSentAt:  i.EmailSentAt,
		InvitedBy:    i.InvitedBy,
		CreatedAt:    i.CreatedAt,
	}
}

type InvitationListResp struct {
	Invitations []InvitationView `json:"invitations"`
}
