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
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// Http is the http server configuration.
type Http struct {
	Host            string
	Port            int
	ContextPath     string
	AccessLog       bool
	BodyLimit       int // bytes
	ReadTimeout     int // seconds
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
	Cors            Cors
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration
	RedisKeyPrefix string
}

type Cors struct {
	AllowOrigins string
}

// SetDefaults fills unset fields with sane values.
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ContextPath == "" {
		h.ContextPath = "/api/v1"
	}
	if h.BodyLimit == 0 {
		// base64 camera frames are posted to the vlm proxy
		h.BodyLimit = 20 * 1024 * 1024
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 120
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 120
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 30
	}
	if h.Auth.AccessExpire == 0 {
		h.Auth.AccessExpire = 24 * time.Hour
	}
	if h.Auth.RedisKeyPrefix == "" {
		h.Auth.RedisKeyPrefix = "socd:session:"
	}
	if h.Cors.AllowOrigins == "" {
		h.Cors.AllowOrigins = "*"
	}
}

// Validate reports configuration that cannot serve requests.
func (h *Http) Validate() error {
	if h.Port <= 0 || h.Port > 65535 {
		return fmt.Errorf("invalid http port %d", h.Port)
	}
	if len(h.Auth.SecretKey) < 16 {
		return fmt.Errorf("http.auth.secretKey must be at least 16 characters")
	}
	return nil
}

// Addr returns the listen address.
func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// NewFiber creates a fiber app configured from cfg, using sonic for JSON.
func NewFiber(cfg *Http) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "socd",
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(cfg.IdleTimeout) * time.Second,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
}

// ErrorHandler renders errors that escape handlers, such as unknown routes, as {error}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := InternalError.Msg
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}
	return WithRepErr(c, code, msg)
}
