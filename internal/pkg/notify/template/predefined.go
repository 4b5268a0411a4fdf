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

package template

const (
	InvitationTemplateID = "invitation"
	OtpResendTemplateID  = "otp_resend"
)

const emailStyle = `
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #0f1419; color: #e7e9ea; }
    .container { max-width: 500px; margin: 40px auto; padding: 40px; background: #1a1f2e; border-radius: 12px; }
    .header { text-align: center; margin-bottom: 30px; }
    .otp-code { font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #3b82f6; text-align: center; padding: 20px; background: #0f1419; border-radius: 8px; margin: 20px 0; }
    .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 30px; }
    .link { color: #3b82f6; text-decoration: none; }`

var PredefinedTemplates = []*Template{
	{
		ID:          InvitationTemplateID,
		Type:        TemplateTypeOnboarding,
		Subject:     "You've been invited to SOC Dashboard",
		Variables:   []string{"InviterName", "Role", "Code", "ExpiresInMinutes", "Link"},
		Description: "Invitation with the first one-time code",
		Content: `<!DOCTYPE html>
<html>
<head>
  <style>` + emailStyle + `
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>SOC Dashboard Invitation</h1>
    </div>
    <p>Hello,</p>
    <p>{{if .InviterName}}{{.InviterName}} has invited you{{else}}You have been invited{{end}} to join the SOC Dashboard as a <strong>{{title .Role}}</strong>.</p>
    <p>Use the following OTP code to complete your registration:</p>
    <div class="otp-code">{{.Code}}</div>
    <p>This code will expire in <strong>{{.ExpiresInMinutes}} minutes</strong>.</p>
    <p>To complete your registration, visit: <a href="{{.Link}}" class="link">{{.Link}}</a></p>
    <div class="footer">
      <p>If you didn't request this invitation, please ignore this email.</p>
      <p>SOC Dashboard - Security Operations Center</p>
    </div>
  </div>
</body>
</html>`,
	},
	{
		ID:          OtpResendTemplateID,
		Type:        TemplateTypeOnboarding,
		Subject:     "Your new OTP code - SOC Dashboard",
		Variables:   []string{"Code", "ExpiresInMinutes"},
		Description: "Replacement one-time code for a pending invitation",
		Content: `<!DOCTYPE html>
<html>
<head>
  <style>` + emailStyle + `
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>New OTP Code</h1>
    </div>
    <p>Here is your new OTP code for SOC Dashboard:</p>
    <div class="otp-code">{{.Code}}</div>
    <p>This code will expire in <strong>{{.ExpiresInMinutes}} minutes</strong>.</p>
    <div class="footer">
      <p>If you didn't request this code, please ignore this email.</p>
      <p>SOC Dashboard - Security Operations Center</p>
    </div>
  </div>
</body>
</html>`,
	},
}
