package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"teamboard/config"
)

var memberAddedTemplate = template.Must(template.New("member_added").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>You were added to {{.TeamName}}</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>You were added to a team</h2>
    <p>Hello {{.Username}},</p>
    <p>You have been added to the team <strong>{{.TeamName}}</strong> as a <strong>{{.Role}}</strong>.</p>
    <p>Log in to see the team's boards and tasks.</p>
</body>
</html>`))

// SendMemberAddedEmail notifies a user they were added to a team.
// Returns nil without sending when SMTP is not configured; callers
// treat delivery as best-effort and must not fail the request on error.
func SendMemberAddedEmail(toEmail, username, teamName string, role string) error {
	smtp := config.AppConfig.SMTP
	if smtp.Host == "" {
		return nil
	}

	var body bytes.Buffer
	if err := memberAddedTemplate.Execute(&body, map[string]string{
		"Username": username,
		"TeamName": teamName,
		"Role":     role,
	}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtp.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("You were added to %s", teamName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
