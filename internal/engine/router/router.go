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
	"github.com/go-arcade/socd/internal/engine/service"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/http/middleware"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	Http     *httpx.Http
	Services *service.Services
}

func NewRouter(httpConf *httpx.Http, services *service.Services) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {
	app := httpx.NewFiber(rt.Http)

	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.RealIPMiddleware())
	app.Use(middleware.CorsMiddleware(rt.Http.Cors.AllowOrigins))
	app.Use(middleware.AccessLogMiddleware(rt.Http.AccessLog))

	app.Get("/health", func(c *fiber.Ctx) error {
		return httpx.WithRepJSON(c, fiber.Map{"status": "ok"})
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return httpx.WithRepJSON(c, version.GetVersion())
	})

	api := app.Group(rt.Http.ContextPath)
	rt.routerGroup(api)

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Services.Identity)

	rt.invitationRouter(r, auth)
	rt.identityRouter(r, auth)
	rt.vlmRouter(r, auth)
}

// errorReply renders service failures as {error}. Anything unclassified becomes a
// generic 500 and only the log sees the cause.
func errorReply(c *fiber.Ctx, err error) error {
	if e := service.AsError(err); e != nil {
		if e.Err != nil {
			log.Errorw("request failed",
				"path", c.Path(),
				"requestId", c.Locals(middleware.RequestIdKey),
				"status", e.Status,
				"error", e.Err,
			)
		}
		return httpx.WithRepErr(c, e.Status, e.Msg)
	}
	log.Errorw("unhandled error",
		"path", c.Path(),
		"requestId", c.Locals(middleware.RequestIdKey),
		"error", err,
	)
	return httpx.WithRepCode(c, httpx.InternalError)
}

// callerId returns the authenticated user. Routes using it are behind the
// authorization middleware.
func callerId(c *fiber.Ctx) (string, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return "", false
	}
	return claims.UserId, true
}
