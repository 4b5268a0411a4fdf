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

// Response is the envelope for plain acknowledgements.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WithRepJSON writes body with status 200.
func WithRepJSON(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// WithRepMsg writes {success:true, message}.
func WithRepMsg(c *fiber.Ctx, msg string) error {
	return WithRepJSON(c, Response{Success: true, Message: msg})
}
