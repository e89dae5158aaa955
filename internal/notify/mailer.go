package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

// EmailClient is the part of the SES v2 client used to send mail.
type EmailClient interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer tells team owners about provisioning outcomes. A Mailer without a
// sender is disabled and sends nothing.
type Mailer struct {
	client EmailClient
	sender string
	log    *zerolog.Logger
}

func NewMailer(client EmailClient, sender string, log *zerolog.Logger) *Mailer {
	return &Mailer{client: client, sender: sender, log: log}
}

// Enabled reports whether the mailer will send email.
func (m *Mailer) Enabled() bool {
	return m != nil && m.client != nil && m.sender != ""
}

// TeamRequested emails the owner that a team was requested for the group.
func (m *Mailer) TeamRequested(ctx context.Context, ownerEmail, displayName, groupID string) error {
	if !m.Enabled() {
		return nil
	}

	subject := fmt.Sprintf("Your team %q is being created", displayName)
	body := fmt.Sprintf("Hello,\n\nThe group %q (%s) was created and a team has been requested for it. "+
		"It will appear in Microsoft Teams shortly.\n", displayName, groupID)

	return m.send(ctx, ownerEmail, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
