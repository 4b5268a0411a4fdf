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
	"fmt"

	"github.com/go-arcade/socd/internal/engine/model"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) identityRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/signup", rt.signUp)
		authGroup.Post("/login", rt.login)

		authGroup.Post("/logout", auth, rt.logout)
		authGroup.Get("/me", auth, rt.me)
	}

	r.Get("/users", auth, rt.listUsers)
}

func (rt *Router) signUp(c *fiber.Ctx) error {
	var req model.SignUpReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	resp, err := rt.Services.Identity.SignUp(c.UserContext(), &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	resp, err := rt.Services.Identity.Login(c.UserContext(), &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return httpx.WithRepCode(c, httpx.Unauthorized)
	}

	if c.QueryBool("all") {
		n, err := rt.Services.Identity.LogoutAll(c.UserContext(), claims)
		if err != nil {
			return errorReply(c, err)
		}
		return httpx.WithRepMsg(c, fmt.Sprintf("Signed out of %d sessions", n))
	}

	if err := rt.Services.Identity.Logout(c.UserContext(), claims); err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepMsg(c, "Signed out")
}

func (rt *Router) me(c *fiber.Ctx) error {
	userId, ok := callerId(c)
	if !ok {
		return httpx.WithRepCode(c, httpx.Unauthorized)
	}

	info, err := rt.Services.Identity.Me(c.UserContext(), userId)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	userId, ok := callerId(c)
	if !ok {
		return httpx.WithRepCode(c, httpx.Unauthorized)
	}

	resp, err := rt.Services.Identity.ListUsers(c.UserContext(), userId)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}
