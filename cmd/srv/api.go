package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/chain-labs/simplr-events-server-v2/internal/middleware"
	"github.com/chain-labs/simplr-events-server-v2/pkg/router"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadDatabase()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.configs, s.logger, s.db)
	s.router.Use(middleware.Logger)

	// Organizer API
	router.POST(s.router, "/registerEvent", s.eventDomain.Register)
	router.POST(s.router, "/uploadGuestList", s.batchDomain.IngestGuestList)
	router.POST(s.router, "/addSingleHolder", s.batchDomain.IngestSingle)
	router.GET(s.router, "/getClaimedTickets", s.ticketDomain.GetClaimed)
	router.GET(s.router, "/getRedeemedTickets", s.ticketDomain.GetRedeemed)

	// Holder API
	router.POST(s.router, "/claimTicket", s.ticketDomain.Claim)
	router.POST(s.router, "/redeemTicket", s.ticketDomain.Redeem)

	// Platform webhook API
	router.POST(s.router, "/webhook/eventbrite", s.webhookDomain.HandleOrder)
}
