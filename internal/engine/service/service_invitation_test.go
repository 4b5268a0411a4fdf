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
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_Authorization(t *testing.T) {
	f := newFixture(t)

	payloads := []*model.IssueInvitationReq{
		{},
		{Email: "not-an-email", Role: "root"},
		{Email: "alice@x.com", Role: "operator"},
	}
	for _, req := range payloads {
		_, err := f.svc.Invitation.Issue(f.ctx, operatorId, req)
		requireServiceError(t, err, ErrNotAdmin)

		_, err = f.svc.Invitation.Issue(f.ctx, "stranger", req)
		requireServiceError(t, err, ErrNotAdmin)
	}

	_, err := f.svc.Invitation.Issue(f.ctx, "", &model.IssueInvitationReq{Email: "alice@x.com", Role: "operator"})
	requireServiceError(t, err, ErrUnauthorized)
	assert.Empty(t, f.mailer.invitations)
}

func TestIssue_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  model.IssueInvitationReq
		want *Error
	}{
		{name: "missing email", req: model.IssueInvitationReq{Role: "operator"}, want: ErrIssueFieldsRequired},
		{name: "missing role", req: model.IssueInvitationReq{Email: "alice@x.com"}, want: ErrIssueFieldsRequired},
		{name: "blank email", req: model.IssueInvitationReq{Email: "   ", Role: "viewer"}, want: ErrIssueFieldsRequired},
		{name: "malformed email", req: model.IssueInvitationReq{Email: "alice@", Role: "viewer"}, want: ErrInvalidEmail},
		{name: "unknown role", req: model.IssueInvitationReq{Email: "alice@x.com", Role: "superuser"}, want: ErrInvalidRole},
		{name: "admin not invitable", req: model.IssueInvitationReq{Email: "alice@x.com", Role: "admin"}, want: ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Invitation.Issue(f.ctx, adminId, &tt.req)
			requireServiceError(t, err, tt.want)
		})
	}
}

func TestIssue_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{
		Email:       "  Alice@X.com ",
		Role:        "Operator",
		InviterName: "Root",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Invitation sent successfully", resp.Message)
	assert.NotEmpty(t, resp.InvitationId)

	mail := f.mailer.lastInvitation()
	assert.Equal(t, "alice@x.com", mail.To)
	assert.Equal(t, "operator", mail.Role)
	assert.Equal(t, "Root", mail.InviterName)
	assert.Equal(t, "https://soc.example.com/auth", mail.Link)
	assert.Equal(t, 30*time.Minute, mail.ExpiresIn)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{6}$`), mail.Code)

	inv, err := f.repos.Invitation.GetPendingByEmail(f.ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, resp.InvitationId, inv.InvitationId)
	assert.Equal(t, mail.Code, inv.OtpCode)
	assert.Equal(t, adminId, inv.InvitedBy)
	assert.True(t, inv.OtpExpiresAt.Equal(f.now.Add(30*time.Minute)))
	require.NotNil(t, inv.EmailSentAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvitationsIssued.WithLabelValues("operator")))
}

func TestIssue_OneRowPerEmail(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{Email: "alice@x.com", Role: "operator"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{Email: "alice@x.com"}))
	second, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{Email: "ALICE@x.com", Role: "viewer"})
	require.NoError(t, err)

	assert.Equal(t, first.InvitationId, second.InvitationId)
	all, err := f.repos.Invitation.List(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.RoleViewer, all[0].Role)
	assert.Equal(t, f.mailer.lastInvitation().Code, all[0].OtpCode)
}

func TestIssue_AlreadyRegistered(t *testing.T) {
	f := newFixture(t)
	inv := f.invite(t, "alice@x.com", model.RoleOperator, "123456")
	require.NoError(t, f.repos.Invitation.Accept(f.ctx, inv.InvitationId))

	_, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{Email: "alice@x.com", Role: "viewer"})
	requireServiceError(t, err, ErrAlreadyRegistered)
}

func TestIssue_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("resend: 403 domain not verified")

	_, err := f.svc.Invitation.Issue(f.ctx, adminId, &model.IssueInvitationReq{Email: "alice@x.com", Role: "operator"})
	require.Error(t, err)
	e := AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, KindDependency, e.Kind)
	assert.Equal(t, 500, e.Status)
	assert.Equal(t, "Invitation saved but the email could not be delivered", e.Msg)

	inv, err := f.repos.Invitation.GetPendingByEmail(f.ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Nil(t, inv.EmailSentAt)
}

func TestVerify_Scenario(t *testing.T) {
	f := newFixture(t)
	f.invite(t, "alice@x.com", model.RoleOperator, "482913")

	_, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "000000"})
	requireServiceError(t, err, ErrInvalidOtp)

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "482913"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "OTP verified successfully", resp.Message)
		assert.Equal(t, model.RoleOperator, resp.Role)
		assert.Equal(t, "alice@x.com", resp.Email)
	}

	inv, err := f.repos.Invitation.GetByEmail(f.ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.InvitationStatusPending, inv.Status)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.OtpVerifications.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OtpVerifications.WithLabelValues("invalid")))
}

func TestVerify_Expiry(t *testing.T) {
	f := newFixture(t)
	inv := f.invite(t, "alice@x.com", model.RoleViewer, "111111")

	f.now = inv.OtpExpiresAt.Add(-time.Second)
	_, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "111111"})
	require.NoError(t, err)

	f.now = inv.OtpExpiresAt
	_, err = f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "111111"})
	requireServiceError(t, err, ErrOtpExpired)

	f.now = inv.OtpExpiresAt.Add(time.Hour)
	_, err = f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "999999"})
	requireServiceError(t, err, ErrOtpExpired)
}

func TestVerify_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com"})
	requireServiceError(t, err, ErrVerifyFieldsRequired)

	_, err = f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Otp: "123456"})
	requireServiceError(t, err, ErrVerifyFieldsRequired)

	_, err = f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "nobody@x.com", Otp: "123456"})
	requireServiceError(t, err, ErrNoPendingInvitation)
}

func TestResend(t *testing.T) {
	f := newFixture(t)
	f.invite(t, "alice@x.com", model.RoleOperator, "111111")

	f.now = f.now.Add(10 * time.Minute)
	require.NoError(t, f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{Email: "Alice@x.com"}))
	newCode := f.mailer.lastOtp().Code
	if newCode == "111111" {
		t.Skip("regenerated code collided with the old one")
	}

	_, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: "111111"})
	requireServiceError(t, err, ErrInvalidOtp)

	resp, err := f.svc.Invitation.Verify(f.ctx, &model.VerifyOtpReq{Email: "alice@x.com", Otp: newCode})
	require.NoError(t, err)
	assert.Equal(t, model.RoleOperator, resp.Role)

	inv, err := f.repos.Invitation.GetPendingByEmail(f.ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, inv.OtpExpiresAt.Equal(f.now.Add(30*time.Minute)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OtpResends))
}

func TestResend_Errors(t *testing.T) {
	f := newFixture(t)

	requireServiceError(t, f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{}), ErrEmailRequired)
	requireServiceError(t, f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{Email: "ghost@x.com"}), ErrNoPendingInvitation)

	inv := f.invite(t, "alice@x.com", model.RoleOperator, "111111")
	f.mailer.err = errors.New("smtp down")
	err := f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{Email: "alice@x.com"})
	e := AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, "New OTP saved but the email could not be delivered", e.Msg)
	assert.Equal(t, 500, e.Status)

	require.NoError(t, f.repos.Invitation.Accept(f.ctx, inv.InvitationId))
	f.mailer.err = nil
	requireServiceError(t, f.svc.Invitation.Resend(f.ctx, &model.ResendOtpReq{Email: "alice@x.com"}), ErrNoPendingInvitation)
}

func TestStatusAndList(t *testing.T) {
	f := newFixture(t)
	f.invite(t, "alice@x.com", model.RoleOperator, "111111")

	st, err := f.svc.Invitation.Status(f.ctx, &model.InvitationStatusReq{Email: "alice@x.com"})
	require.NoError(t, err)
	assert.Equal(t, model.InvitationStatusPending, st.Status)

	_, err = f.svc.Invitation.Status(f.ctx, &model.InvitationStatusReq{Email: "bob@x.com"})
	requireServiceError(t, err, ErrNoPendingInvitation)
	_, err = f.svc.Invitation.Status(f.ctx, &model.InvitationStatusReq{Email: "bob"})
	requireServiceError(t, err, ErrInvalidEmail)

	_, err = f.svc.Invitation.List(f.ctx, operatorId, "")
	requireServiceError(t, err, ErrAdminRequired)
	_, err = f.svc.Invitation.List(f.ctx, adminId, "expired")
	requireServiceError(t, err, ErrInvalidStatusFilter)

	list, err := f.svc.Invitation.List(f.ctx, adminId, "pending")
	require.NoError(t, err)
	require.Len(t, list.Invitations, 1)
	assert.Equal(t, "alice@x.com", list.Invitations[0].Email)

	all, err := f.svc.Invitation.ListAll(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Invitations, 1)
	accepted, err := f.svc.Invitation.ListAll(f.ctx, "ACCEPTED")
	require.NoError(t, err)
	assert.Empty(t, accepted.Invitations)

	n, err := f.svc.Invitation.RefreshPendingGauge(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PendingInvitations))
}

func TestGenerateOtp(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOtp(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func TestError_Is(t *testing.T) {
	wrapped := ErrInvalidOtp.Wrap(errors.New("cause"))
	assert.ErrorIs(t, wrapped, ErrInvalidOtp)
	assert.NotErrorIs(t, wrapped, ErrOtpExpired)
	assert.Equal(t, "Invalid OTP code: cause", wrapped.Error())
	assert.Nil(t, AsError(errors.New("plain")))
}
