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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallResponse = `{"choices":[{"message":{"tool_calls":[{"function":{"name":"submit_threat_assessment","arguments":"{\"sceneDescription\":\"Loading dock at night\",\"detectedObjects\":[{\"label\":\"person\",\"confidence\":91,\"boundingBox\":{\"x\":10,\"y\":20,\"width\":30,\"height\":60}}],\"riskLevel\":\"high\",\"riskScore\":78,\"riskReasoning\":\"Person near restricted door after hours\",\"anomalies\":[\"after-hours presence\"],\"behaviorAnalysis\":\"Loitering\",\"recommendations\":[\"Dispatch guard\"]}"}}]}}]}`

func newVlmService(t *testing.T, handler http.HandlerFunc) *VlmService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := (&VlmConf{GatewayUrl: srv.URL + "/v1/chat/completions", ApiKey: "test-key", Timeout: 5 * time.Second}).SetDefaults()
	return NewVlmService(conf, metrics.NewOnboarding(prometheus.NewRegistry()))
}

func TestVlmAnalyze(t *testing.T) {
	var got map[string]any
	svc := newVlmService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, sonic.Unmarshal(data, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(toolCallResponse))
	})

	out, err := svc.Analyze(context.Background(), &model.VlmAnalysisReq{CameraId: "cam-7", ImageBase64: "AAAA"})
	require.NoError(t, err)

	assert.Equal(t, "cam-7", out.CameraId)
	assert.Equal(t, "gemini-2.5-pro", out.ModelVersion)
	assert.Equal(t, model.RiskHigh, out.RiskLevel)
	assert.Equal(t, 78.0, out.RiskScore)
	require.Len(t, out.DetectedObjects, 1)
	require.NotNil(t, out.DetectedObjects[0].BoundingBox)
	assert.Equal(t, 60.0, out.DetectedObjects[0].BoundingBox.Height)
	_, err = time.Parse(time.RFC3339, out.Timestamp)
	assert.NoError(t, err)

	assert.Equal(t, "google/gemini-2.5-pro", got["model"])
	choice := got["tool_choice"].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "submit_threat_assessment", choice["name"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	parts := messages[1].(map[string]any)["content"].([]any)
	image := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", image["url"])
}

func TestVlmAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		code   int
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: "Rate limit exceeded. Please try again later.", code: 429},
		{name: "credits", status: http.StatusPaymentRequired, want: "AI credits exhausted. Please add funds to continue.", code: 402},
		{name: "upstream failure", status: http.StatusBadGateway, want: "AI analysis failed", code: 500},
		{name: "no tool call", status: http.StatusOK, body: `{"choices":[{"message":{}}]}`, want: "Invalid AI response format", code: 500},
		{name: "wrong tool", status: http.StatusOK, body: `{"choices":[{"message":{"tool_calls":[{"function":{"name":"other","arguments":"{}"}}]}}]}`, want: "Invalid AI response format", code: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newVlmService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := svc.Analyze(context.Background(), &model.VlmAnalysisReq{CameraId: "cam-1", ImageUrl: "https://cdn.example.com/f.jpg"})
			e := AsError(err)
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Msg)
			assert.Equal(t, tt.code, e.Status)
		})
	}
}

func TestVlmAnalyze_Validation(t *testing.T) {
	svc := NewVlmService((&VlmConf{}).SetDefaults(), metrics.NewOnboarding(prometheus.NewRegistry()))
	ctx := context.Background()

	_, err := svc.Analyze(ctx, &model.VlmAnalysisReq{ImageUrl: "https://x"})
	requireServiceError(t, err, ErrCameraIdRequired)

	_, err = svc.Analyze(ctx, &model.VlmAnalysisReq{CameraId: "cam-1"})
	requireServiceError(t, err, ErrImageRequired)

	_, err = svc.Analyze(ctx, &model.VlmAnalysisReq{CameraId: "cam-1", ImageUrl: "https://x"})
	e := AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, "AI service not configured", e.Msg)
}
