package testutil

import (
	"context"
	"fmt"

	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/mail"
)

type MockMailer struct {
	SendBulkTemplatedFunc func(ctx context.Context, template string, destinations []mail.Destination) ([]mail.SendResult, error)
}

func (m *MockMailer) SendBulkTemplated(
	ctx context.Context, template string, destinations []mail.Destination,
) ([]mail.SendResult, error) {
	if m.SendBulkTemplatedFunc != nil {
		return m.SendBulkTemplatedFunc(ctx, template, destinations)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

// SuccessMailer accepts every destination and records what it sent.
type SuccessMailer struct {
	Sent []mail.Destination
}

func (m *SuccessMailer) SendBulkTemplated(
	ctx context.Context, template string, destinations []mail.Destination,
) ([]mail.SendResult, error) {
	results := make([]mail.SendResult, len(destinations))
	for i, destination := range destinations {
		m.Sent = append(m.Sent, destination)
		results[i] = mail.SendResult{
			ToAddress: destination.ToAddress,
			MessageID: fmt.Sprintf("msg-%d", len(m.Sent)),
		}
	}

	return results, nil
}
