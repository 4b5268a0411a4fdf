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

package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/socd/internal/engine/model"
	httpx "github.com/go-arcade/socd/pkg/http"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/go-resty/resty/v2"
)

const assessmentToolName = "submit_threat_assessment"

const analystPrompt = `You are an advanced Vision Language Model (VLM) security analyst for a Security Operations Center (SOC). Your role is to analyze camera feed images and provide comprehensive threat assessments.

When analyzing an image, you must provide:
1. A detailed scene description
2. All detected objects with confidence scores (0-100)
3. Risk assessment with level (low/medium/high/critical) and score (0-100)
4. Any anomalies or suspicious activities
5. Behavioral analysis of people/vehicles in the scene
6. Security recommendations

Focus on security-relevant observations:
- Unauthorized access attempts
- Suspicious behavior patterns
- Crowd density and movement
- Unattended objects
- Perimeter breaches
- Vehicle anomalies
- Environmental hazards

Be precise, professional, and err on the side of caution for security matters.`

const assessmentSchemaJSON = `{
  "type": "object",
  "properties": {
    "sceneDescription": {"type": "string", "description": "Detailed description of the scene"},
    "detectedObjects": {
      "type": "array",
      "description": "List of detected objects",
      "items": {
        "type": "object",
        "properties": {
          "label": {"type": "string", "description": "Object label/type"},
          "confidence": {"type": "number", "description": "Confidence score 0-100"},
          "boundingBox": {
            "type": "object",
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"},
              "width": {"type": "number"},
              "height": {"type": "number"}
            }
          }
        },
        "required": ["label", "confidence"]
      }
    },
    "riskLevel": {"type": "string", "enum": ["low", "medium", "high", "critical"], "description": "Overall risk level"},
    "riskScore": {"type": "number", "description": "Risk score from 0-100"},
    "riskReasoning": {"type": "string", "description": "Explanation for the risk assessment"},
    "anomalies": {"type": "array", "items": {"type": "string"}, "description": "List of detected anomalies or suspicious activities"},
    "behaviorAnalysis": {"type": "string", "description": "Analysis of behavioral patterns observed"},
    "recommendations": {"type": "array", "items": {"type": "string"}, "description": "Security recommendations based on analysis"}
  },
  "required": ["sceneDescription", "detectedObjects", "riskLevel", "riskScore", "riskReasoning", "anomalies", "behaviorAnalysis", "recommendations"],
  "additionalProperties": false
}`

var assessmentSchema = mustDecodeSchema(assessmentSchemaJSON)

func mustDecodeSchema(s string) map[string]any {
	var schema map[string]any
	if err := sonic.UnmarshalString(s, &schema); err != nil {
		panic(fmt.Sprintf("invalid tool schema: %v", err))
	}
	return schema
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []chatTool    `json:"tools"`
	ToolChoice chatTool      `json:"tool_choice"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageUrl *imageUrl `json:"image_url,omitempty"`
}

type imageUrl struct {
	Url string `json:"url"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

type assessmentArgs struct {
	SceneDescription string                 `json:"sceneDescription"`
	DetectedObjects  []model.DetectedObject `json:"detectedObjects"`
	RiskLevel        model.RiskLevel        `json:"riskLevel"`
	RiskScore        float64                `json:"riskScore"`
	RiskReasoning    string                 `json:"riskReasoning"`
	Anomalies        []string               `json:"anomalies"`
	BehaviorAnalysis string                 `json:"behaviorAnalysis"`
	Recommendations  []string               `json:"recommendations"`
}

// VlmService forwards one camera frame to the model gateway and returns its
// structured threat assessment.
type VlmService struct {
	conf    *VlmConf
	client  *resty.Client
	metrics *metrics.Onboarding
	now     func() time.Time
}

func NewVlmService(conf *VlmConf, m *metrics.Onboarding) *VlmService {
	return &VlmService{
		conf:    conf,
		client:  httpx.NewClient("", conf.Timeout),
		metrics: m,
		now:     time.Now,
	}
}

func (s *VlmService) Analyze(ctx context.Context, req *model.VlmAnalysisReq) (*model.ThreatAssessment, error) {
	cameraId := strings.TrimSpace(req.CameraId)
	if cameraId == "" {
		return nil, ErrCameraIdRequired
	}
	if req.ImageBase64 == "" && req.ImageUrl == "" {
		return nil, ErrImageRequired
	}
	if s.conf.ApiKey == "" {
		log.Errorw("vlm gateway api key is not configured")
		return nil, s.fail("not_configured", dependency(msgAiNotConfigured, nil))
	}

	start := s.now()
	image := req.ImageUrl
	if req.ImageBase64 != "" {
		image = "data:image/jpeg;base64," + req.ImageBase64
	}
	body := chatRequest{
		Model: s.conf.Model,
		Messages: []chatMessage{
			{Role: "system", Content: analystPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: fmt.Sprintf("Analyze this security camera feed from camera %s. Provide a comprehensive threat assessment.", cameraId)},
				{Type: "image_url", ImageUrl: &imageUrl{Url: image}},
			}},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: toolFunction{
				Name:        assessmentToolName,
				Description: "Submit a structured threat assessment for the analyzed camera feed",
				Parameters:  assessmentSchema,
			},
		}},
		ToolChoice: chatTool{Type: "function", Function: toolFunction{Name: assessmentToolName}},
	}

	log.Infow("processing vlm analysis", "cameraId", cameraId)
	result := new(chatResponse)
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.conf.ApiKey).
		SetBody(body).
		SetResult(result).
		Post(s.conf.GatewayUrl)
	if err != nil {
		log.Errorw("vlm gateway call failed", "cameraId", cameraId, "error", err)
		return nil, s.fail("failed", dependency(msgAiFailed, err))
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, s.fail("rate_limited", ErrRateLimited)
	case resp.StatusCode() == http.StatusPaymentRequired:
		return nil, s.fail("payment_required", ErrCreditsExhausted)
	case resp.IsError():
		log.Errorw("vlm gateway error", "cameraId", cameraId, "status", resp.StatusCode(), "body", truncate(resp.String(), 500))
		return nil, s.fail("failed", dependency(msgAiFailed, fmt.Errorf("gateway status %d", resp.StatusCode())))
	}

	args, err := extractAssessment(result)
	if err != nil {
		log.Errorw("invalid vlm tool call", "cameraId", cameraId, "error", err)
		return nil, s.fail("invalid_response", dependency(msgAiInvalidResponse, err))
	}

	assessment := &model.ThreatAssessment{
		CameraId:         cameraId,
		Timestamp:        s.now().UTC().Format(time.RFC3339),
		ModelVersion:     s.conf.ModelVersion,
		ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
		SceneDescription: args.SceneDescription,
		DetectedObjects:  args.DetectedObjects,
		RiskLevel:        args.RiskLevel,
		RiskScore:        args.RiskScore,
		RiskReasoning:    args.RiskReasoning,
		Anomalies:        args.Anomalies,
		BehaviorAnalysis: args.BehaviorAnalysis,
		Recommendations:  args.Recommendations,
	}
	s.metrics.VlmRequests.WithLabelValues("success").Inc()
	log.Infow("vlm analysis complete", "cameraId", cameraId, "riskLevel", assessment.RiskLevel,
		"riskScore", assessment.RiskScore, "processingTimeMs", assessment.ProcessingTimeMs)
	return assessment, nil
}

func extractAssessment(resp *chatResponse) (*assessmentArgs, error) {
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool call in response")
	}
	call := resp.Choices[0].Message.ToolCalls[0].Function
	if call.Name != assessmentToolName {
		return nil, fmt.Errorf("unexpected tool %q", call.Name)
	}
	args := new(assessmentArgs)
	if err := sonic.UnmarshalString(call.Arguments, args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	if !args.RiskLevel.Valid() {
		return nil, fmt.Errorf("unknown risk level %q", args.RiskLevel)
	}
	if args.DetectedObjects == nil {
		args.DetectedObjects = []model.DetectedObject{}
	}
	return args, nil
}

func (s *VlmService) fail(outcome string, err error) error {
	s.metrics.VlmRequests.WithLabelValues(outcome).Inc()
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
