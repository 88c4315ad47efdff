package testutil

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/config"
	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/pkg/logger"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

// Well-formed v0 content identifiers for pin results in tests.
const (
	Cid1 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	Cid2 = "QmQPeNsJPyVWPFDVHb77w8G42Fvo15z4bG2X8D2GhfbSXc"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// A single connection keeps every goroutine on the same in-memory
	// database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "testing",
		Chain: config.ChainConfigs{
			Chain:          "sepolia",
			ChainID:        11155111,
			ConfirmTimeout: time.Minute,
		},
		Mail: config.MailConfigs{
			VerifiedMail: "no-reply@example.com",
		},
		Storage: config.S3Configs{
			Bucket: "guestlists-test",
		},
		Kafka: config.KafkaConfigs{
			BatchTopic: "batch-lifecycle",
		},
		Intake: config.IntakeConfigs{
			WebhookEndpoint: "https://api.example.com/webhook/eventbrite",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
