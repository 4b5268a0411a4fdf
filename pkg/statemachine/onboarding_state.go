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

package statemachine

// OnboardingStep is a step of the invited-user signup form.
type OnboardingStep string

const (
	StepEmail     OnboardingStep = "email"
	StepOtp       OnboardingStep = "otp"
	StepPassword  OnboardingStep = "password"
	StepCompleted OnboardingStep = "completed"
)

const (
	EventInvitationFound Event = "invitation_found"
	EventOtpVerified     Event = "otp_verified"
	EventAccountCreated  Event = "account_created"
	EventBack            Event = "back"
)

func (s OnboardingStep) IsTerminal() bool {
	return s == StepCompleted
}

// NewOnboardingStateMachine wires email -> otp -> password -> completed, with back
// edges password -> otp and otp -> email.
func NewOnboardingStateMachine() *StateMachine[OnboardingStep] {
	sm := NewWithState(StepEmail)

	sm.AddEventTransition(StepEmail, EventInvitationFound, StepOtp).
		AddEventTransition(StepOtp, EventOtpVerified, StepPassword).
		AddEventTransition(StepOtp, EventBack, StepEmail).
		AddEventTransition(StepPassword, EventAccountCreated, StepCompleted).
		AddEventTransition(StepPassword, EventBack, StepOtp)

	return sm
}
