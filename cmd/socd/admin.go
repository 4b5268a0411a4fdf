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
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateFlags struct {
	email    string
	password string
	name     string
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator account without an invitation",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := adminCreateFlags
		if f.email == "" {
			return errors.New("--email is required")
		}
		password := f.password
		if password == "" {
			if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password, survey.WithValidator(survey.MinLength(8))); err != nil {
				return err
			}
		}

		s, cleanup, err := initStore(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := s.services.Identity.CreateAdmin(cmd.Context(), f.email, password, f.name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s created (user id %s)\n",
			color.GreenString("✔"), user.Email, user.UserId)
		return err
	},
}

func init() {
	flags := adminCreateCmd.Flags()
	flags.StringVar(&adminCreateFlags.email, "email", "", "admin email address")
	flags.StringVar(&adminCreateFlags.password, "password", "", "admin password, prompted when empty")
	flags.StringVar(&adminCreateFlags.name, "name", "", "full name")

	adminCmd.AddCommand(adminCreateCmd)
}
