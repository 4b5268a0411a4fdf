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

func (rt *Router) vlmRouter(r fiber.Router, auth fiber.Handler) {
	r.Post("/vlm-analysis", auth, rt.vlmAnalysis)
}

func (rt *Router) vlmAnalysis(c *fiber.Ctx) error {
	var req model.VlmAnalysisReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepCode(c, httpx.BadRequest)
	}

	assessment, err := rt.Services.Vlm.Analyze(c.UserContext(), &req)
	if err != nil {
		return errorReply(c, err)
	}
	return httpx.WithRepJSON(c, assessment)
}
