package domain

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/testutil"
)

func newTicketDomain() TicketDomain {
	return NewTicketDomain(repository.NewEventRepository(), repository.NewTicketRepository())
}

func claimRequest() *model.ClaimTicketRequest {
	return &model.ClaimTicketRequest{
		Email:           testutil.Ticket1.Email,
		FirstName:       testutil.Ticket1.FirstName,
		LastName:        testutil.Ticket1.LastName,
		EventName:       testutil.Event1.Name,
		ContractAddress: testutil.Ticket1.ContractAddress,
		BatchID:         testutil.Ticket1.BatchID,
		ClaimTrx:        "0xclaim",
		TokenID:         "42",
		AccountAddress:  "0xholder",
		IsSubscribed:    true,
	}
}

func redeemRequest(at time.Time) *model.RedeemTicketRequest {
	return &model.RedeemTicketRequest{
		Email:           testutil.Ticket1.Email,
		FirstName:       testutil.Ticket1.FirstName,
		LastName:        testutil.Ticket1.LastName,
		EventName:       testutil.Event1.Name,
		ContractAddress: testutil.Ticket1.ContractAddress,
		BatchID:         testutil.Ticket1.BatchID,
		RedeemTimestamp: at.Unix(),
	}
}

func Test_ticketDomain_Claim(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()
	resp, err := domain.Claim(ctx, claimRequest())
	require.NoError(t, err)
	require.True(t, resp.Ticket.IsClaimed)
	require.Equal(t, "0xclaim", resp.Ticket.ClaimTrx)
	require.Equal(t, "42", resp.Ticket.TokenID)
	require.Equal(t, "0xholder", resp.Ticket.AccountAddress)
	require.True(t, resp.Ticket.IsSubscribed)
	require.Equal(t, testutil.Event1.Name, resp.Ticket.EventName)

	// Claiming twice is rejected.
	_, err = domain.Claim(ctx, claimRequest())
	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyClaimed, errx.Code)
}

func Test_ticketDomain_Claim_concurrentSingleWinner(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()

	var winners int64
	eg := errgroup.Group{}
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			_, err := domain.Claim(ctx, claimRequest())
			if err == nil {
				atomic.AddInt64(&winners, 1)
				return nil
			}

			errx := errorx.Error{}
			if errors.As(err, &errx) && errx.Code == errorx.AlreadyClaimed {
				return nil
			}

			return err
		})
	}
	require.NoError(t, eg.Wait())
	require.EqualValues(t, 1, winners)
}

func Test_ticketDomain_Claim_wrongIdentity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()

	req := claimRequest()
	req.LastName = "Unknown"
	_, err := domain.Claim(ctx, req)
	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	req = claimRequest()
	req.BatchID = 99
	_, err = domain.Claim(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	req = claimRequest()
	req.EventName = "no-such-event"
	_, err = domain.Claim(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_ticketDomain_Redeem(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()

	// Second day of the entry window.
	at := time.Date(2026, 11, 10, 18, 30, 0, 0, time.UTC)
	resp, err := domain.Redeem(ctx, redeemRequest(at))
	require.NoError(t, err)
	require.True(t, resp.Ticket.IsRedeemed)
	require.Equal(t, 1, resp.Ticket.DaysEntered)
	require.Equal(t, 2, resp.EventDay)

	// Entries are bounded by the window length.
	for i := 0; i < 3; i++ {
		_, err = domain.Redeem(ctx, redeemRequest(at))
		require.NoError(t, err)
	}

	_, err = domain.Redeem(ctx, redeemRequest(at))
	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.EntryLimitExceeded, errx.Code)
}

func Test_ticketDomain_Redeem_outsideWindow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()

	errx := errorx.Error{}
	_, err := domain.Redeem(ctx, redeemRequest(time.Date(2026, 11, 8, 23, 59, 0, 0, time.UTC)))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.OutsideEntryWindow, errx.Code)

	_, err = domain.Redeem(ctx, redeemRequest(time.Date(2026, 11, 13, 0, 1, 0, 0, time.UTC)))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.OutsideEntryWindow, errx.Code)

	// The window bounds themselves are allowed.
	_, err = domain.Redeem(ctx, redeemRequest(time.Date(2026, 11, 9, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = domain.Redeem(ctx, redeemRequest(time.Date(2026, 11, 12, 23, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
}

func Test_ticketDomain_GetClaimedAndRedeemed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTicketDomain()

	claimReq := claimRequest()
	claimReq.ClaimTimestamp = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC).Unix()
	_, err := domain.Claim(ctx, claimReq)
	require.NoError(t, err)

	claimed, err := domain.GetClaimed(ctx, &model.GetClaimedTicketsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, claimed.Count)
	require.Equal(t, testutil.Ticket1.ID, claimed.Tickets[0].ID)
	require.Equal(t, claimReq.ClaimTimestamp, claimed.Tickets[0].ClaimedAt)

	// A range before the claim finds nothing.
	claimed, err = domain.GetClaimed(ctx, &model.GetClaimedTicketsRequest{
		StartTimestamp: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Unix(),
		EndTimestamp:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC).Unix(),
	})
	require.NoError(t, err)
	require.Equal(t, 0, claimed.Count)

	at := time.Date(2026, 11, 9, 12, 0, 0, 0, time.UTC)
	_, err = domain.Redeem(ctx, redeemRequest(at))
	require.NoError(t, err)

	redeemed, err := domain.GetRedeemed(ctx, &model.GetRedeemedTicketsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, redeemed.Count)
	require.Equal(t, testutil.Ticket1.ID, redeemed.Tickets[0].ID)
}
