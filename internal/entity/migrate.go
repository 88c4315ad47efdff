package entity

import (
	"context"

	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Event{},
		&Ticket{},
	)
}
