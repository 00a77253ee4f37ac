package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"captiveportal/models"

	"gopkg.in/gomail.v2"
)

// Embedded campaign layout
var campaignTemplate = template.Must(template.New("campaign").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .content { margin: 20px 0; white-space: pre-line; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="content">{{.Body}}</div>
    <div class="footer">
        <p>Ricevi questa email perché hai dato il consenso al marketing presso {{.Sender}}.</p>
        <p>© {{.Year}} {{.Sender}}</p>
    </div>
</body>
</html>`))

type campaignData struct {
	Subject string
	Body    string
	Sender  string
	Year    int
}

// BuildCampaignMessage assembles the message a contact would receive
func BuildCampaignMessage(campaign models.Campaign, fromName, fromEmail string, to models.Contact, now time.Time) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := campaignTemplate.Execute(&body, campaignData{
		Subject: campaign.Subject,
		Body:    campaign.Body,
		Sender:  fromName,
		Year:    now.Year(),
	}); err != nil {
		return nil, fmt.Errorf("failed to render campaign %s: %w", campaign.ID, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", fromEmail, fromName)
	m.SetAddressHeader("To", to.Email, to.FullName())
	m.SetHeader("Subject", campaign.Subject)
	m.SetDateHeader("Date", now)
	m.SetHeader("X-Campaign-ID", campaign.ID)
	m.SetBody("text/plain", campaign.Body)
	m.AddAlternative("text/html", body.String())
	return m, nil
}

// RenderMessage returns the RFC 822 form of a message
func RenderMessage(m *gomail.Message) (string, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
