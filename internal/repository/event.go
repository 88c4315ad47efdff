package repository

import (
	"context"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetByName(ctx context.Context, name string) (*entity.Event, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.Event, error)
	GetByWebhookID(ctx context.Context, webhookID string) (*entity.Event, error)
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetByName(ctx context.Context, name string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "external_id=?", externalID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetByWebhookID(ctx context.Context, webhookID string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "webhook_id=?", webhookID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
