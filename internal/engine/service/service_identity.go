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
	"fmt"
	"strings"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/internal/engine/repo"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/http/jwt"
	"github.com/go-arcade/socd/pkg/id"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// IdentityService owns accounts, role bindings and access tokens.
type IdentityService struct {
	auth        httpx.Auth
	repos       *repo.Repositories
	invitations *InvitationService
	metrics     *metrics.Onboarding
}

func NewIdentityService(auth httpx.Auth, repos *repo.Repositories, invitations *InvitationService, m *metrics.Onboarding) *IdentityService {
	return &IdentityService{
		auth:        auth,
		repos:       repos,
		invitations: invitations,
		metrics:     m,
	}
}

// SignUp turns a pending invitation into an account. The code is verified again
// inside the transaction; the user, its role binding and the accepted invitation
// commit together or not at all.
func (s *IdentityService) SignUp(ctx context.Context, req *model.SignUpReq) (*model.SessionResp, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Otp) == "" {
		return nil, ErrVerifyFieldsRequired
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repos.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, dependency(msgInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dependency(msgInternal, err)
	}
	user := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Email:     email,
		FullName:  strings.TrimSpace(req.FullName),
		Password:  string(hash),
		IsEnabled: 1,
	}

	var role model.Role
	err = s.repos.Tx.Transaction(ctx, func(tx *repo.Repositories) error {
		inv, err := s.invitations.checkPending(ctx, tx.Invitation, email, req.Otp)
		if err != nil {
			return err
		}
		role = inv.Role
		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}
		grantedBy := inv.InvitedBy
		if err := tx.UserRoleBinding.Bind(ctx, user.UserId, inv.Role, &grantedBy); err != nil {
			return err
		}
		if err := tx.Invitation.Accept(ctx, inv.InvitationId); err != nil {
			if errors.Is(err, repo.ErrStaleInvitation) {
				return ErrInvitationNotPending
			}
			return err
		}
		return nil
	})
	if err != nil {
		if AsError(err) != nil {
			return nil, err
		}
		log.Errorw("create account failed", "email", email, "error", err)
		return nil, dependency(msgInternal, err)
	}

	s.metrics.AccountsCreated.WithLabelValues(role.String()).Inc()
	log.Infow("account created", "userId", user.UserId, "email", email, "role", role)
	return s.openSession(ctx, user, role, "Account created successfully")
}

func (s *IdentityService) Login(ctx context.Context, req *model.LoginReq) (*model.SessionResp, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	user, err := s.repos.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dependency(msgInternal, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Infow("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}
	if user.IsEnabled == 0 {
		return nil, ErrAccountDisabled
	}

	role, err := s.repos.UserRoleBinding.GetRole(ctx, user.UserId)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, dependency(msgInternal, err)
	}
	return s.openSession(ctx, user, role, "")
}

func (s *IdentityService) openSession(ctx context.Context, user *model.User, role model.Role, message string) (*model.SessionResp, error) {
	token, claims, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire)
	if err != nil {
		return nil, dependency(msgInternal, err)
	}
	session := &model.Session{
		UserId:    user.UserId,
		TokenId:   claims.ID,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.repos.Session.Save(ctx, session); err != nil {
		return nil, dependency(msgInternal, err)
	}
	return &model.SessionResp{
		Success:     true,
		Message:     message,
		UserId:      user.UserId,
		Email:       user.Email,
		Role:        role,
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Authenticate accepts a token only if it is correctly signed and its session
// has not been revoked.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (*jwt.AuthClaims, error) {
	claims, err := jwt.ParseToken(token, s.auth.SecretKey)
	if err != nil {
		return nil, err
	}
	live, err := s.repos.Session.Exists(ctx, claims.UserId, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, fmt.Errorf("session %s revoked", claims.ID)
	}
	return claims, nil
}

func (s *IdentityService) Logout(ctx context.Context, claims *jwt.AuthClaims) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if err := s.repos.Session.Revoke(ctx, claims.UserId, claims.ID); err != nil {
		return dependency(msgInternal, err)
	}
	return nil
}

// LogoutAll revokes every live session of the caller, including the current one.
func (s *IdentityService) LogoutAll(ctx context.Context, claims *jwt.AuthClaims) (int, error) {
	if claims == nil {
		return 0, ErrUnauthorized
	}
	n, err := s.repos.Session.RevokeAll(ctx, claims.UserId)
	if err != nil {
		return 0, dependency(msgInternal, err)
	}
	log.Infow("all sessions revoked", "userId", claims.UserId, "count", n)
	return n, nil
}

func (s *IdentityService) Me(ctx context.Context, userId string) (*model.UserInfo, error) {
	user, err := s.repos.User.GetByUserId(ctx, userId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dependency(msgInternal, err)
	}
	role, err := s.repos.UserRoleBinding.GetRole(ctx, userId)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, dependency(msgInternal, err)
	}
	return &model.UserInfo{
		UserId:    user.UserId,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *IdentityService) ListUsers(ctx context.Context, callerId string) (*model.UserListResp, error) {
	if err := requireAdmin(ctx, s.repos.UserRoleBinding, callerId, ErrAdminRequired); err != nil {
		return nil, err
	}
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, dependency(msgInternal, err)
	}
	if users == nil {
		users = []model.UserInfo{}
	}
	return &model.UserListResp{Users: users}, nil
}

// CreateAdmin seeds an administrator account without an invitation.
func (s *IdentityService) CreateAdmin(ctx context.Context, email, password, fullName string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrLoginFieldsRequired
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		Password:  string(hash),
		IsEnabled: 1,
	}
	err = s.repos.Tx.Transaction(ctx, func(tx *repo.Repositories) error {
		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}
		return tx.UserRoleBinding.Bind(ctx, user.UserId, model.RoleAdmin, nil)
	})
	if err != nil {
		return nil, err
	}
	log.Infow("admin account created", "userId", user.UserId, "email", email)
	return user, nil
}
