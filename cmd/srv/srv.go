package main

import (
	"context"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/config"
	"github.com/chain-labs/simplr-events-server-v2/internal/domain"
	"github.com/chain-labs/simplr-events-server-v2/internal/domain/anchor"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api/eventbrite"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api/pinata"
	"github.com/chain-labs/simplr-events-server-v2/pkg/blockchain/eth"
	"github.com/chain-labs/simplr-events-server-v2/pkg/kafka"
	"github.com/chain-labs/simplr-events-server-v2/pkg/logger"
	"github.com/chain-labs/simplr-events-server-v2/pkg/mail"
	"github.com/chain-labs/simplr-events-server-v2/pkg/pubsub"
	"github.com/chain-labs/simplr-events-server-v2/pkg/redis"
	"github.com/chain-labs/simplr-events-server-v2/pkg/router"
	"github.com/chain-labs/simplr-events-server-v2/pkg/storage"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type srv struct {
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	ethClient          eth.Client
	pinataEndpoint     pinata.IEndpoint
	eventbriteEndpoint eventbrite.IEndpoint
	mailer             mail.Mailer
	storage            storage.Storage
	redisClient        *goredis.Client
	locker             redis.Locker
	publisher          *anchor.Publisher
	bus                pubsub.Publisher

	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository

	batchDomain   domain.BatchDomain
	ticketDomain  domain.TicketDomain
	eventDomain   domain.EventDomain
	webhookDomain domain.WebhookDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = cfg
	if cfg.Env == "local" {
		s.logger = logger.NewLogger(logger.DEBUG)
	} else {
		s.logger = logger.NewLogger(logger.INFO)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	s.ctx = ctx
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadEndpoint() {
	var err error
	s.ethClient, err = eth.NewClient(s.configs.Chain)
	if err != nil {
		panic(err)
	}

	s.pinataEndpoint = pinata.New(s.configs.Pinata)
	s.eventbriteEndpoint = eventbrite.New()
	s.mailer = mail.NewSESMailer(s.configs.Mail)
	s.storage = storage.NewS3Storage(s.configs.Storage)

	s.redisClient = redis.NewClient(s.configs.Redis.Addr)
	s.locker = redis.NewLocker(s.redisClient)

	// The lifecycle bus is optional; without a broker the batch flow still
	// runs and announcements are skipped.
	if s.configs.Kafka.Addr != "" && s.configs.Kafka.BatchTopic != "" {
		s.bus = kafka.NewPublisher("simplr-events-server", []string{s.configs.Kafka.Addr})
	}

	s.publisher = anchor.NewPublisher(s.ethClient, s.pinataEndpoint, s.locker)
}

func (s *srv) loadRepos() {
	s.eventRepo = repository.NewEventRepository()
	s.ticketRepo = repository.NewTicketRepository()
}

func (s *srv) loadDomains() {
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.ethClient, s.eventbriteEndpoint)
	s.batchDomain = domain.NewBatchDomain(
		s.eventRepo, s.ticketRepo, s.publisher, s.mailer, s.storage, s.bus)
	s.ticketDomain = domain.NewTicketDomain(s.eventRepo, s.ticketRepo)
	s.webhookDomain = domain.NewWebhookDomain(
		s.eventRepo, s.ticketRepo, s.batchDomain, s.eventbriteEndpoint)
}
