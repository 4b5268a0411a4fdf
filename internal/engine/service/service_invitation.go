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

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/repo"
	"github.com/go-arcade/socd/internal/pkg/notify"
	"github.com/go-arcade/socd/pkg/id"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
)

// Mailer delivers the onboarding emails.
type Mailer interface {
	SendInvitation(ctx context.Context, mail notify.InvitationMail) error
	SendOtp(ctx context.Context, mail notify.OtpMail) error
}

// InvitationService issues, verifies and refreshes invitation codes.
type InvitationService struct {
	conf    *OnboardingConf
	repos   *repo.Repositories
	mailer  Mailer
	metrics *metrics.Onboarding
	now     func() time.Time
}

func NewInvitationService(conf *OnboardingConf, repos *repo.Repositories, mailer Mailer, m *metrics.Onboarding) *InvitationService {
	return &InvitationService{
		conf:    conf,
		repos:   repos,
		mailer:  mailer,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Issue creates or refreshes the invitation for req.Email and mails a new code.
// The admin check runs before the payload is looked at.
func (s *InvitationService) Issue(ctx context.Context, callerId string, req *model.IssueInvitationReq) (*model.IssueInvitationResp, error) {
	if err := requireAdmin(ctx, s.repos.UserRoleBinding, callerId, ErrNotAdmin); err != nil {
		return nil, err
	}

	email := model.NormalizeEmail(req.Email)
	rawRole := strings.TrimSpace(req.Role)
	if email == "" || rawRole == "" {
		return nil, ErrIssueFieldsRequired
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	role, ok := model.ParseRole(rawRole)
	if !ok || !role.Invitable() {
		return nil, ErrInvalidRole
	}

	code, err := GenerateOtp(s.conf.OtpLength)
	if err != nil {
		return nil, dependency(msgCreateInvitationFailed, err)
	}
	now := s.now()
	inv, err := s.repos.Invitation.UpsertPending(ctx, &model.Invitation{
		InvitationId: id.GetUUID(),
		Email:        email,
		Role:         role,
		OtpCode:      code,
		OtpExpiresAt: now.Add(s.conf.OtpTTL),
		InvitedBy:    callerId,
	})
	if err != nil {
		if errors.Is(err, repo.ErrInvitationAccepted) {
			return nil, ErrAlreadyRegistered
		}
		log.Errorw("create invitation failed", "email", email, "error", err)
		return nil, dependency(msgCreateInvitationFailed, err)
	}
	s.metrics.InvitationsIssued.WithLabelValues(role.String()).Inc()

	err = s.mailer.SendInvitation(ctx, notify.InvitationMail{
		To:          email,
		InviterName: strings.TrimSpace(req.InviterName),
		Role:        role.String(),
		Code:        code,
		ExpiresIn:   s.conf.OtpTTL,
		Link:        s.conf.AuthLink(),
	})
	if err != nil {
		return nil, dependency(msgInvitationNotDelivered, err)
	}
	s.markSent(ctx, inv.InvitationId, now)

	log.Infow("invitation issued", "invitationId", inv.InvitationId, "email", email, "role", role, "invitedBy", callerId)
	return &model.IssueInvitationResp{
		Success:      true,
		Message:      "Invitation sent successfully",
		InvitationId: inv.InvitationId,
	}, nil
}

// Verify checks a code against the pending invitation. It never accepts the
// invitation, so a correct code keeps verifying until it expires or is replaced.
func (s *InvitationService) Verify(ctx context.Context, req *model.VerifyOtpReq) (*model.VerifyOtpResp, error) {
	inv, err := s.checkPending(ctx, s.repos.Invitation, req.Email, req.Otp)
	if err != nil {
		return nil, err
	}
	return &model.VerifyOtpResp{
		Success: true,
		Message: "OTP verified successfully",
		Role:    inv.Role,
		Email:   inv.Email,
	}, nil
}

// checkPending runs the verification contract against invitations, which may be
// bound to a transaction.
func (s *InvitationService) checkPending(ctx context.Context, invitations repo.IInvitationRepository, rawEmail, rawOtp string) (*model.Invitation, error) {
	email := model.NormalizeEmail(rawEmail)
	otp := strings.TrimSpace(rawOtp)
	if email == "" || otp == "" {
		return nil, ErrVerifyFieldsRequired
	}

	inv, err := s.pendingByEmail(ctx, invitations, email)
	if err != nil {
		s.metrics.OtpVerifications.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if err := checkOtp(inv, otp, s.now()); err != nil {
		outcome := "invalid"
		if errors.Is(err, ErrOtpExpired) {
			outcome = "expired"
		}
		s.metrics.OtpVerifications.WithLabelValues(outcome).Inc()
		log.Infow("otp rejected", "email", email, "outcome", outcome)
		return nil, err
	}
	s.metrics.OtpVerifications.WithLabelValues("success").Inc()
	return inv, nil
}

// Resend replaces the code of a pending invitation. The previous code stops
// verifying as soon as the update commits.
func (s *InvitationService) Resend(ctx context.Context, req *model.ResendOtpReq) error {
	email := model.NormalizeEmail(req.Email)
	if email == "" {
		return ErrEmailRequired
	}
	inv, err := s.pendingByEmail(ctx, s.repos.Invitation, email)
	if err != nil {
		return err
	}

	code, err := GenerateOtp(s.conf.OtpLength)
	if err != nil {
		return dependency(msgGenerateOtpFailed, err)
	}
	now := s.now()
	if err := s.repos.Invitation.UpdateOtp(ctx, inv.InvitationId, code, now.Add(s.conf.OtpTTL)); err != nil {
		if errors.Is(err, repo.ErrStaleInvitation) {
			return ErrNoPendingInvitation
		}
		log.Errorw("update otp failed", "invitationId", inv.InvitationId, "error", err)
		return dependency(msgGenerateOtpFailed, err)
	}
	s.metrics.OtpResends.Inc()

	err = s.mailer.SendOtp(ctx, notify.OtpMail{To: email, Code: code, ExpiresIn: s.conf.OtpTTL})
	if err != nil {
		return dependency(msgOtpNotDelivered, err)
	}
	s.markSent(ctx, inv.InvitationId, now)

	log.Infow("otp resent", "invitationId", inv.InvitationId, "email", email)
	return nil
}

// Status reports whether email has a pending invitation, expired or not.
func (s *InvitationService) Status(ctx context.Context, req *model.InvitationStatusReq) (*model.InvitationStatusResp, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	inv, err := s.pendingByEmail(ctx, s.repos.Invitation, email)
	if err != nil {
		return nil, err
	}
	return &model.InvitationStatusResp{Success: true, Email: inv.Email, Status: inv.Status}, nil
}

func (s *InvitationService) List(ctx context.Context, callerId, status string) (*model.InvitationListResp, error) {
	if err := requireAdmin(ctx, s.repos.UserRoleBinding, callerId, ErrAdminRequired); err != nil {
		return nil, err
	}
	return s.ListAll(ctx, status)
}

// ListAll lists invitations without a caller check, for operator tooling.
func (s *InvitationService) ListAll(ctx context.Context, status string) (*model.InvitationListResp, error) {
	filter := model.InvitationStatus(strings.ToLower(strings.TrimSpace(status)))
	switch filter {
	case "", model.InvitationStatusPending, model.InvitationStatusAccepted:
	default:
		return nil, ErrInvalidStatusFilter
	}

	invitations, err := s.repos.Invitation.List(ctx, filter)
	if err != nil {
		return nil, dependency(msgInternal, err)
	}
	resp := &model.InvitationListResp{Invitations: make([]model.InvitationView, 0, len(invitations))}
	for i := range invitations {
		resp.Invitations = append(resp.Invitations, invitations[i].View())
	}
	return resp, nil
}

// RefreshPendingGauge recounts pending invitations into the metrics gauge.
func (s *InvitationService) RefreshPendingGauge(ctx context.Context) (int64, error) {
	n, err := s.repos.Invitation.CountPending(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.PendingInvitations.Set(float64(n))
	return n, nil
}

func (s *InvitationService) pendingByEmail(ctx context.Context, invitations repo.IInvitationRepository, email string) (*model.Invitation, error) {
	inv, err := invitations.GetPendingByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoPendingInvitation
		}
		return nil, dependency(msgInternal, err)
	}
	return inv, nil
}

// markSent records the delivery time. Failures are only logged.
func (s *InvitationService) markSent(ctx context.Context, invitationId string, at time.Time) {
	if err := s.repos.Invitation.MarkEmailSent(ctx, invitationId, at); err != nil {
		log.Warnw("record email sent failed", "invitationId", invitationId, "error", err)
	}
}

// requireAdmin resolves the caller's binding and fails with denied unless it is admin.
func requireAdmin(ctx context.Context, bindings repo.IUserRoleBindingRepository, callerId string, denied *Error) error {
	if callerId == "" {
		return ErrUnauthorized
	}
	role, err := bindings.GetRole(ctx, callerId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return denied
		}
		return dependency(msgInternal, err)
	}
	if role != model.RoleAdmin {
		return denied
	}
	return nil
}
