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
	"time"

	"github.com/go-arcade/socd/internal/engine/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var invitationCmd = &cobra.Command{
	Use:   "invitation",
	Short: "Inspect invitations",
}

var invitationListStatus string

var invitationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invitations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := initStore(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := s.services.Invitation.ListAll(cmd.Context(), invitationListStatus)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Email", "Role", "Status", "Expires", "Email Sent", "Invited By", "Created"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetAutoWrapText(false)
		now := time.Now()
		for _, inv := range resp.Invitations {
			table.Rich(invitationRow(inv, now), invitationColors(inv, now))
		}
		table.Render()
		return nil
	},
}

func init() {
	invitationListCmd.Flags().StringVar(&invitationListStatus, "status", "", "filter by status: pending or accepted")
	invitationCmd.AddCommand(invitationListCmd)
}

func invitationRow(inv model.InvitationView, now time.Time) []string {
	expires := inv.OtpExpiresAt.Local().Format(time.DateTime)
	if inv.Status == model.InvitationStatusPending && !now.Before(inv.OtpExpiresAt) {
		expires += " (expired)"
	}
	sent := "-"
	if inv.EmailSentAt != nil {
		sent = inv.EmailSentAt.Local().Format(time.DateTime)
	}
	return []string{
		inv.Email,
		inv.Role.String(),
		string(inv.Status),
		expires,
		sent,
		inv.InvitedBy,
		inv.CreatedAt.Local().Format(time.DateTime),
	}
}

func invitationColors(inv model.InvitationView, now time.Time) []tablewriter.Colors {
	c := tablewriter.Colors{}
	switch {
	case inv.Status == model.InvitationStatusAccepted:
		c = tablewriter.Colors{tablewriter.FgGreenColor}
	case !now.Before(inv.OtpExpiresAt):
		c = tablewriter.Colors{tablewriter.FgYellowColor}
	}
	colors := make([]tablewriter.Colors, 7)
	for i := range colors {
		colors[i] = c
	}
	return colors
}
