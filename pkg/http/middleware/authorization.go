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

package middleware

import (
	"context"
	"strings"

	"github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/http/jwt"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/gofiber/fiber/v2"
)

const (
	ClaimsKey = "claims"
	UserIdKey = "user_id"
)

// TokenAuthenticator resolves a bearer token into claims, or fails.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.AuthClaims, error)
}

// AuthorizationMiddleware rejects requests without a live bearer token with 401.
func AuthorizationMiddleware(auth TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := BearerToken(c)
		if !ok {
			return http.WithRepCode(c, http.Unauthorized)
		}

		claims, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			log.Debugw("authenticate token failed", "path", c.Path(), "error", err)
			return http.WithRepCode(c, http.Unauthorized)
		}

		c.Locals(ClaimsKey, claims)
		c.Locals(UserIdKey, claims.UserId)
		return c.Next()
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetClaims returns the claims stored by AuthorizationMiddleware.
func GetClaims(c *fiber.Ctx) (*jwt.AuthClaims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*jwt.AuthClaims)
	return claims, ok && claims != nil
}
