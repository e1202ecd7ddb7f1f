package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

// Service sends inquiry emails via SMTP. It is the production
// implementation of domain.InquirySubmitter.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// Config holds the SMTP settings for the inquiry mailbox
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	ToEmail   string
}

// NewService creates a new email service
func NewService(cfg Config) *Service {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
		toEmail:   cfg.ToEmail,
	}
}

// inquiryEmailTemplate is the HTML template for inquiry notification emails
const inquiryEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Project Inquiry</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .badge { display: inline-block; background: #e6f0fa; color: #0066cc; padding: 2px 8px; border-radius: 4px; font-size: 12px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Project Inquiry</h1>
            {{if .FromEstimator}}<span class="badge">Imported from cost estimator</span>{{end}}
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div class="value">{{.Name}} ({{.Email}}){{if .Company}} — {{.Company}}{{end}}</div>
            </div>
            {{if .Phone}}
            <div class="field">
                <div class="label">Phone:</div>
                <div class="value">{{.Phone}}</div>
            </div>
            {{end}}
            <div class="field">
                <div class="label">Project Type:</div>
                <div class="value">{{.ProjectType}}</div>
            </div>
            {{if .Budget}}
            <div class="field">
                <div class="label">Budget:</div>
                <div class="value">{{.Budget}}</div>
            </div>
            {{end}}
            {{if .Timeline}}
            <div class="field">
                <div class="label">Timeline:</div>
                <div class="value">{{.Timeline}}</div>
            </div>
            {{end}}
            <div class="field">
                <div class="label">Description:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
            <div class="field">
                <div class="label">Preferred contact:</div>
                <div class="value">{{.PreferredContact}} ({{.CommunicationFrequency}} updates)</div>
            </div>
            {{if .AttachmentNames}}
            <div class="field">
                <div class="label">Attachments:</div>
                <div class="value">{{.Attachments}}</div>
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>This email was sent from the portfolio inquiry form.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`

type inquiryEmailData struct {
	*domain.Inquiry
	Attachments string
}

// Submit sends an inquiry notification to the configured recipient.
// Implements domain.InquirySubmitter.
func (s *Service) Submit(ctx context.Context, inq *domain.Inquiry) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	tmpl, err := template.New("inquiry").Parse(inquiryEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	data := inquiryEmailData{Inquiry: inq, Attachments: strings.Join(inq.AttachmentNames, ", ")}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("Project Inquiry: %s from %s", inq.ProjectType, inq.Name)

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		inq.Email,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
