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

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOnboarding_Registers(t *testing.T) {
	s := NewServer(MetricsConfig{})
	m := NewOnboarding(s.Registry())

	m.InvitationsIssued.WithLabelValues("operator").Inc()
	m.OtpVerifications.WithLabelValues("invalid").Add(2)
	m.PendingInvitations.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvitationsIssued.WithLabelValues("operator")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OtpVerifications.WithLabelValues("invalid")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingInvitations))

	families, err := s.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "socd_onboarding_invitations_issued_total")
	assert.Contains(t, names, "socd_onboarding_pending_invitations")
}

func TestServer_DisabledServeReturns(t *testing.T) {
	s := NewServer(MetricsConfig{Enable: false})
	assert.NoError(t, s.Serve())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestMetricsConfig_SetDefaults(t *testing.T) {
	c := MetricsConfig{}
	c.SetDefaults()
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "/metrics", c.Path)
}

func TestServer_ServesRegistry(t *testing.T) {
	s := NewServer(MetricsConfig{})
	m := NewOnboarding(s.Registry())
	m.OtpResends.Inc()

	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "socd_onboarding_otp_resends_total 1")
	assert.Contains(t, rec.Body.String(), `socd_build_info{commit=`)
}
