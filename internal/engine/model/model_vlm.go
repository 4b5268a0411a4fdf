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

package model

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

type VlmAnalysisReq struct {
	CameraId    string `json:"cameraId"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	ImageUrl    string `json:"imageUrl,omitempty"`
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type DetectedObject struct {
	Label       string       `json:"label"`
	Confidence  float64      `json:"confidence"`
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
}

// ThreatAssessment is the structured result of one frame analysis.
type ThreatAssessment struct {
	CameraId         string           `json:"cameraId"`
	Timestamp        string           `json:"timestamp"`
	ModelVersion     string           `json:"modelVersion"`
	ProcessingTimeMs int64            `json:"processingTimeMs"`
	SceneDescription string           `json:"sceneDescription"`
	DetectedObjects  []DetectedObject `json:"detectedObjects"`
	RiskLevel        RiskLevel        `json:"riskLevel"`
	RiskScore        float64          `json:"riskScore"`
	RiskReasoning    string           `json:"riskReasoning"`
	Anomalies        []string         `json:"anomalies"`
	BehaviorAnalysis string           `json:"behaviorAnalysis"`
	Recommendations  []string         `json:"recommendations"`
}
