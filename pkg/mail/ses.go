package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/chain-labs/simplr-events-server-v2/config"
)

type sesMailer struct {
	client *ses.SES
	cfg    config.MailConfigs
}

func NewSESMailer(cfg config.MailConfigs) Mailer {
	sess, _ := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})

	return &sesMailer{
		client: ses.New(sess),
		cfg:    cfg,
	}
}

func (m *sesMailer) SendBulkTemplated(
	ctx context.Context, template string, destinations []Destination,
) ([]SendResult, error) {
	bulk := make([]*ses.BulkEmailDestination, 0, len(destinations))
	for _, dest := range destinations {
		data, err := json.Marshal(dest.TemplateData)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal template data for %s: %w", dest.ToAddress, err)
		}

		bulk = append(bulk, &ses.BulkEmailDestination{
			Destination: &ses.Destination{
				ToAddresses: []*string{aws.String(dest.ToAddress)},
			},
			ReplacementTemplateData: aws.String(string(data)),
		})
	}

	output, err := m.client.SendBulkTemplatedEmailWithContext(ctx, &ses.SendBulkTemplatedEmailInput{
		Source:              aws.String(m.cfg.VerifiedMail),
		Template:            aws.String(template),
		Destinations:        bulk,
		DefaultTemplateData: aws.String(`{"contact":{"firstName":"Buddy"}}`),
	})
	if err != nil {
		return nil, fmt.Errorf("bulk send failed: %w", err)
	}

	results := make([]SendResult, len(destinations))
	for i, status := range output.Status {
		if i >= len(results) {
			break
		}

		results[i].ToAddress = destinations[i].ToAddress
		if aws.StringValue(status.Status) == ses.BulkEmailStatusSuccess {
			results[i].MessageID = aws.StringValue(status.MessageId)
		} else {
			results[i].Err = fmt.Sprintf("%s: %s",
				aws.StringValue(status.Status), aws.StringValue(status.Error))
		}
	}

	return results, nil
}
