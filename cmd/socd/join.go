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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/go-arcade/socd/internal/pkg/onboarding"
	"github.com/go-arcade/socd/pkg/statemachine"
	"github.com/spf13/cobra"
)

const (
	actionSubmitCode  = "Enter the code"
	actionResend      = "Send me a new code"
	actionSetPassword = "Choose a password"
	actionBack        = "Back"
)

var joinFlags struct {
	server     string
	codeLength int
	timeout    time.Duration
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Accept an invitation and create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := onboarding.NewClient(joinFlags.server, joinFlags.timeout)
		form := onboarding.NewForm(client, joinFlags.codeLength)

		err := runJoin(cmd.Context(), cmd.OutOrStdout(), form)
		if errors.Is(err, terminal.InterruptErr) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled. Your invitation is still valid until the code expires.")
			return nil
		}
		return err
	},
}

func init() {
	flags := joinCmd.Flags()
	flags.StringVar(&joinFlags.server, "server", "http://localhost:8080/api/v1", "API base URL including the context path")
	flags.IntVar(&joinFlags.codeLength, "code-length", onboarding.DefaultCodeLength, "digits in the one-time code")
	flags.DurationVar(&joinFlags.timeout, "timeout", 15*time.Second, "per request timeout")
}

func runJoin(ctx context.Context, out io.Writer, form *onboarding.Form) error {
	for !form.Step().IsTerminal() {
		var err error
		switch form.Step() {
		case statemachine.StepEmail:
			err = joinEmailStep(ctx, form)
		case statemachine.StepOtp:
			err = joinOtpStep(ctx, out, form)
		case statemachine.StepPassword:
			err = joinPasswordStep(ctx, form)
		}
		if errors.Is(err, terminal.InterruptErr) {
			return err
		}
		if err != nil {
			_, _ = color.New(color.FgRed).Fprintf(out, "✘ %s\n", err)
		}
	}

	session := form.Session()
	_, err := fmt.Fprintf(out, "%s Account created for %s with role %s.\n",
		color.GreenString("✔"), session.Email, color.CyanString(session.Role.String()))
	return err
}

func joinEmailStep(ctx context.Context, form *onboarding.Form) error {
	var email string
	if err := survey.AskOne(&survey.Input{Message: "Invited email address:", Default: form.Email()}, &email, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	return withSpinner("Looking up your invitation", func() error {
		return form.SubmitEmail(ctx, email)
	})
}

func joinOtpStep(ctx context.Context, out io.Writer, form *onboarding.Form) error {
	var action string
	prompt := &survey.Select{
		Message: fmt.Sprintf("A code was sent to %s:", form.Email()),
		Options: []string{actionSubmitCode, actionResend, actionBack},
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return err
	}

	switch action {
	case actionResend:
		err := withSpinner("Sending a new code", func() error {
			return form.Resend(ctx)
		})
		if err == nil {
			_, _ = fmt.Fprintln(out, color.GreenString("✔")+" A new code is on its way. The previous one no longer works.")
		}
		return err
	case actionBack:
		return form.Back()
	}

	var code string
	if err := survey.AskOne(&survey.Input{Message: fmt.Sprintf("%d-digit code:", form.CodeLength())}, &code); err != nil {
		return err
	}
	return withSpinner("Verifying", func() error {
		return form.SubmitOtp(ctx, code)
	})
}

func joinPasswordStep(ctx context.Context, form *onboarding.Form) error {
	var action string
	prompt := &survey.Select{
		Message: fmt.Sprintf("Code verified, you are joining as %s:", form.Role()),
		Options: []string{actionSetPassword, actionBack},
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return err
	}
	if action == actionBack {
		return form.Back()
	}

	answers := struct {
		FullName string `survey:"fullName"`
		Password string `survey:"password"`
		Confirm  string `survey:"confirm"`
	}{}
	questions := []*survey.Question{
		{Name: "fullName", Prompt: &survey.Input{Message: "Full name (optional):"}},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}},
		{Name: "confirm", Prompt: &survey.Password{Message: "Confirm password:"}},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}
	return withSpinner("Creating your account", func() error {
		return form.SubmitPassword(ctx, answers.Password, answers.Confirm, answers.FullName)
	})
}

func withSpinner(msg string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	return fn()
}
