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

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IInvitationRepository interface {
	// UpsertPending inserts or refreshes the pending invitation keyed by email and
	// returns the stored row. ErrInvitationAccepted if the email is already accepted.
	UpsertPending(ctx context.Context, inv *model.Invitation) (*model.Invitation, error)
	GetByEmail(ctx context.Context, email string) (*model.Invitation, error)
	GetPendingByEmail(ctx context.Context, email string) (*model.Invitation, error)
	// UpdateOtp overwrites code and expiry of a pending invitation in one statement.
	UpdateOtp(ctx context.Context, invitationId, code string, expiresAt time.Time) error
	MarkEmailSent(ctx context.Context, invitationId string, at time.Time) error
	// Accept moves a pending invitation to accepted. ErrStaleInvitation if it was not pending.
	Accept(ctx context.Context, invitationId string) error
	List(ctx context.Context, status model.InvitationStatus) ([]model.Invitation, error)
	CountPending(ctx context.Context) (int64, error)
}

type InvitationRepo struct {
	db database.IDatabase
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{db: db}
}

// A refreshed code has not been delivered yet, so email_sent_at is reset with it.
var invitationUpsertColumns = []string{"role", "otp_code", "otp_expires_at", "invited_by", "email_sent_at", "updated_at"}

func (ir *InvitationRepo) UpsertPending(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	var saved model.Invitation
	err := ir.db.Transaction(ctx, func(txdb database.IDatabase) error {
		tx := txdb.Conn(ctx)
		var existing model.Invitation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", inv.Email).Take(&existing).Error
		switch {
		case err == nil:
			if !existing.IsPending() {
				return ErrInvitationAccepted
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		row := *inv
		row.ID = 0
		row.Status = model.InvitationStatusPending
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(invitationUpsertColumns),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("email = ?", inv.Email).Take(&saved).Error
	})
	if err != nil {
		if errors.Is(err, ErrInvitationAccepted) {
			return nil, err
		}
		return nil, fmt.Errorf("upsert invitation %s: %w", inv.Email, translate(err))
	}
	return &saved, nil
}

func (ir *InvitationRepo) GetByEmail(ctx context.Context, email string) (*model.Invitation, error) {
	var inv model.Invitation
	err := ir.db.Conn(ctx).Where("email = ?", email).Take(&inv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// GetPendingByEmail reads from the primary so a code written a moment ago is visible.
func (ir *InvitationRepo) GetPendingByEmail(ctx context.Context, email string) (*model.Invitation, error) {
	var inv model.Invitation
	err := ir.db.Writer(ctx).
		Where("email = ? AND status = ?", email, model.InvitationStatusPending).
		Take(&inv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (ir *InvitationRepo) UpdateOtp(ctx context.Context, invitationId, code string, expiresAt time.Time) error {
	return ir.updatePending(ctx, invitationId, map[string]any{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
		"email_sent_at":  nil,
	})
}

func (ir *InvitationRepo) MarkEmailSent(ctx context.Context, invitationId string, at time.Time) error {
	err := ir.db.Conn(ctx).Model(&model.Invitation{}).
		Where("invitation_id = ?", invitationId).
		Update("email_sent_at", at).Error
	if err != nil {
		return fmt.Errorf("mark invitation %s sent: %w", invitationId, err)
	}
	return nil
}

func (ir *InvitationRepo) Accept(ctx context.Context, invitationId string) error {
	return ir.updatePending(ctx, invitationId, map[string]any{
		"status": model.InvitationStatusAccepted,
	})
}

func (ir *InvitationRepo) updatePending(ctx context.Context, invitationId string, values map[string]any) error {
	result := ir.db.Conn(ctx).Model(&model.Invitation{}).
		Where("invitation_id = ? AND status = ?", invitationId, model.InvitationStatusPending).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("update invitation %s: %w", invitationId, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleInvitation
	}
	return nil
}

// List returns invitations newest first. An empty status lists all of them.
func (ir *InvitationRepo) List(ctx context.Context, status model.InvitationStatus) ([]model.Invitation, error) {
	var invitations []model.Invitation
	query := ir.db.Reader(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

func (ir *InvitationRepo) CountPending(ctx context.Context) (int64, error) {
	return Count(ir.db.Reader(ctx).
		Model(&model.Invitation{}).
		Where("status = ?", model.InvitationStatusPending))
}
