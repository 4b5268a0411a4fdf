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

package http

import (
	"github.com/gofiber/fiber/v2"
)

// ResponseErr is the single error shape every endpoint returns.
type ResponseErr struct {
	Error string `json:"error"`
}

// WithRepErr writes {error: msg} with the given status.
func WithRepErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ResponseErr{Error: msg})
}

// WithRepCode writes a predefined Code.
func WithRepCode(c *fiber.Ctx, code *Code) error {
	return WithRepErr(c, code.Status, code.Msg)
}
