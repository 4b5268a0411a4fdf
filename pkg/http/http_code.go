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

import "github.com/gofiber/fiber/v2"

// Code pairs an http status with the message sent to clients.
type Code struct {
	Status int
	Msg    string
}

var (
	BadRequest    = failed(fiber.StatusBadRequest, "Invalid request body")
	Unauthorized  = failed(fiber.StatusUnauthorized, "Unauthorized")
	Forbidden     = failed(fiber.StatusForbidden, "Forbidden")
	NotFound      = failed(fiber.StatusNotFound, "Not found")
	InternalError = failed(fiber.StatusInternalServerError, "Internal server error")
)

func failed(status int, msg string) *Code {
	return &Code{Status: status, Msg: msg}
}
