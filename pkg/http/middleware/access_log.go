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
	"io"
	"strings"
	"time"

	"github.com/go-arcade/socd/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var accessLogSkipPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

const accessLogFormat = "requestId:[${locals:" + RequestIdKey + "}] ip:[${locals:" + ClientIpKey + "}] " +
	"user:[${locals:" + UserIdKey + "}] method:[${method}] path:[${path}] status:[${status}] " +
	"latency:[${latency}] error:[${error}]"

// AccessLogMiddleware writes one line per request into the zap logger, at warn
// for 4xx and error for 5xx. Bodies and query strings are never logged because
// they carry OTP codes and passwords.
func AccessLogMiddleware(enabled bool) fiber.Handler {
	return accessLog(enabled, logAccess)
}

func logAccess(status int, line string) {
	switch {
	case status >= fiber.StatusInternalServerError:
		log.Error(line)
	case status >= fiber.StatusBadRequest:
		log.Warn(line)
	default:
		log.Info(line)
	}
}

func accessLog(enabled bool, sink func(status int, line string)) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return logger.New(logger.Config{
		TimeFormat: time.RFC3339Nano,
		TimeZone:   "Local",
		Format:     accessLogFormat,
		Next: func(c *fiber.Ctx) bool {
			_, skip := accessLogSkipPaths[c.Path()]
			return skip
		},
		Output: io.Discard,
		Done: func(c *fiber.Ctx, line []byte) {
			sink(c.Response().StatusCode(), strings.TrimSpace(string(line)))
		},
	})
}
