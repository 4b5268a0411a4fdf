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
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "socd"

// Onboarding groups the invitation flow and vlm proxy collectors.
type Onboarding struct {
	InvitationsIssued  *prometheus.CounterVec
	OtpVerifications   *prometheus.CounterVec
	OtpResends         prometheus.Counter
	EmailsSent         *prometheus.CounterVec
	AccountsCreated    *prometheus.CounterVec
	VlmRequests        *prometheus.CounterVec
	PendingInvitations prometheus.Gauge
}

func NewOnboarding(reg prometheus.Registerer) *Onboarding {
	m := &Onboarding{
		InvitationsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "onboarding",
			Name:      "invitations_issued_total",
			Help:      "Invitations created or refreshed, by role.",
		}, []string{"role"}),
		OtpVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "onboarding",
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts, by outcome.",
		}, []string{"outcome"}),
		OtpResends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "onboarding",
			Name:      "otp_resends_total",
			Help:      "OTP codes regenerated.",
		}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "emails_sent_total",
			Help:      "Emails handed to the delivery channel, by template and outcome.",
		}, []string{"template", "outcome"}),
		AccountsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "accounts_created_total",
			Help:      "Accounts created from accepted invitations, by role.",
		}, []string{"role"}),
		VlmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vlm",
			Name:      "requests_total",
			Help:      "Threat assessment requests proxied to the model gateway, by outcome.",
		}, []string{"outcome"}),
		PendingInvitations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "onboarding",
			Name:      "pending_invitations",
			Help:      "Invitations currently pending, refreshed periodically.",
		}),
	}

	reg.MustRegister(
		m.InvitationsIssued,
		m.OtpVerifications,
		m.OtpResends,
		m.EmailsSent,
		m.AccountsCreated,
		m.VlmRequests,
		m.PendingInvitations,
	)
	return m
}
