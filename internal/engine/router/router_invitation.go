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

package router

import (
	"github.com/go-arcade/socd/internal/engine/model"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) invitationRouter(r fiber.Router, auth fiber.Handler) {
	r.Post("/issue-invitation", auth, rt.issueInvitation)
	r.Post("/verify-otp", rt.verifyOtp)
	r.Post("/resend-otp", rt.resendOtp)
	r.Post("/invitation-status", rt.invitationStatus)

	r.Get("/invitations", auth, rt.listInvitations)
}

func (rt *Router) issueInvitation(c *fiber.Ctx) error {
	userId, ok := callerId(c)
	if !ok {
		return httpx.WithRepCode(c, httpx.Unauthorized)
	}

	// a malformed body is reported after the admin check, as missing fields
	var req model.IssueInvitationReq
	if err := c.BodyParser(&req); err != nil {
		req = model.IssueInvitationReq{}
	}

	resp, err := rt.Services.Invitation.Issue(c.UserContext(), userId, &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) verifyOtp(c *fiber.Ctx) error {
	var req model.VerifyOtpReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	resp, err := rt.Services.Invitation.Verify(c.UserContext(), &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) resendOtp(c *fiber.Ctx) error {
	var req model.ResendOtpReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	if err := rt.Services.Invitation.Resend(c.UserContext(), &req); err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepMsg(c, "New OTP sent successfully")
}

func (rt *Router) invitationStatus(c *fiber.Ctx) error {
	var req model.InvitationStatusReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	resp, err := rt.Services.Invitation.Status(c.UserContext(), &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) listInvitations(c *fiber.Ctx) error {
	userId, ok := callerId(c)
	if !ok {
		return httpx.WithRepCode(c, httpx.Unauthorized)
	}

	resp, err := rt.Services.Invitation.List(c.UserContext(), userId, c.Query("status"))
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}
