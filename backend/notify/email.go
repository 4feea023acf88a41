package notify

import (
	"context"
	"fmt"
	"log"

	appconfig "cosmolearn/backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailNotifier sends notifications via Amazon SES. It stays disabled while
// no from-address is configured, in which case Notify silently drops the
// message; notifications carry no delivery guarantee.
type EmailNotifier struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
}

// NewEmailNotifier builds the SES-backed notifier. toEmail is the recipient
// of operational notifications (badge digests, storage alerts).
func NewEmailNotifier(cfg *appconfig.Config, toEmail string) (*EmailNotifier, error) {
	if cfg.SESFromEmail == "" || toEmail == "" {
		log.Println("Email notifier disabled: SES_FROM_EMAIL not configured")
		return &EmailNotifier{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailNotifier{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.SESFromEmail,
		fromName:  cfg.SESFromName,
		toEmail:   toEmail,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the notifier will actually send anything.
func (n *EmailNotifier) IsEnabled() bool {
	return n.enabled
}

func (n *EmailNotifier) Notify(title, message string) {
	if !n.enabled {
		return
	}

	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(title)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(message)},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(context.TODO(), input); err != nil {
		// Fire-and-forget: log and move on.
		log.Printf("failed to send notification email: %v", err)
	}
}
