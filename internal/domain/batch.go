package domain

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/internal/domain/anchor"
	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api"
	"github.com/chain-labs/simplr-events-server-v2/pkg/dateutil"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/mail"
	"github.com/chain-labs/simplr-events-server-v2/pkg/merkle"
	"github.com/chain-labs/simplr-events-server-v2/pkg/pubsub"
	"github.com/chain-labs/simplr-events-server-v2/pkg/storage"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

// Batch lifecycle states as reported to callers and on the event bus.
const (
	BatchStatePending       = "pending"
	BatchStateContentPinned = "content_pinned"
	BatchStateAnchored      = "anchored"
	BatchStateNotified      = "notified"
	BatchStatePersisted     = "persisted"
	BatchStateFailed        = "failed"
)

type BatchDomain interface {
	IngestSingle(ctx context.Context, req *model.IngestSingleRequest) (*model.BatchResponse, error)
	IngestGuestList(ctx context.Context, req *model.IngestGuestListRequest) (*model.BatchResponse, error)
}

type batchDomain struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	publisher  *anchor.Publisher
	mailer     mail.Mailer
	storage    storage.Storage
	bus        pubsub.Publisher
}

func NewBatchDomain(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	publisher *anchor.Publisher,
	mailer mail.Mailer,
	storage storage.Storage,
	bus pubsub.Publisher,
) *batchDomain {
	return &batchDomain{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		publisher:  publisher,
		mailer:     mailer,
		storage:    storage,
		bus:        bus,
	}
}

func (d *batchDomain) IngestSingle(
	ctx context.Context, req *model.IngestSingleRequest,
) (*model.BatchResponse, error) {
	event, err := d.eventRepo.GetByName(ctx, req.EventName)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event %s: %v", req.EventName, err)
		if err == gorm.ErrRecordNotFound {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		return nil, errorx.Unknown
	}

	holder := req.Holder
	if holder.FirstName == "" || holder.LastName == "" || holder.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Holder name and email are required")
	}

	return d.run(ctx, event, []model.Holder{holder}, req.Resume)
}

func (d *batchDomain) IngestGuestList(
	ctx context.Context, req *model.IngestGuestListRequest,
) (*model.BatchResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event %s: %v", req.EventID, err)
		if err == gorm.ErrRecordNotFound {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		return nil, errorx.Unknown
	}

	guests, err := parseGuestList(req.GuestListCSV)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse guest list: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Malformed guest list")
	}

	if len(guests) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Guest list is empty")
	}

	d.archiveGuestList(ctx, event, req.GuestListCSV)

	holders, err := d.filterKnownGuests(ctx, guests)
	if err != nil {
		return nil, errorx.Unknown
	}

	if len(holders) == 0 {
		return nil, errorx.New(errorx.AlreadyExists, "All guests are already invited")
	}

	return d.run(ctx, event, holders, req.Resume)
}

// filterKnownGuests drops guests whose upstream ticket id is already
// persisted, so re-uploading an amended guest list only issues the new rows.
func (d *batchDomain) filterKnownGuests(
	ctx context.Context, guests []model.Holder,
) ([]model.Holder, error) {
	fresh := make([]model.Holder, 0, len(guests))
	for _, guest := range guests {
		if guest.ExternalTicketID != "" {
			_, err := d.ticketRepo.GetByExternalTicketID(ctx, guest.ExternalTicketID)
			if err == nil {
				continue
			}

			if err != gorm.ErrRecordNotFound {
				xcontext.Logger(ctx).Errorf("Cannot check ticket %s: %v", guest.ExternalTicketID, err)
				return nil, err
			}
		}

		fresh = append(fresh, guest)
	}

	return fresh, nil
}

func (d *batchDomain) archiveGuestList(ctx context.Context, event *entity.Event, raw string) {
	cfg := xcontext.Configs(ctx)
	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Storage.Bucket,
		Prefix:   "guestlists/" + event.ID,
		FileName: fmt.Sprintf("%d.csv", time.Now().Unix()),
		Mime:     "text/csv",
		Data:     []byte(raw),
	})
	if err != nil {
		// The archive is an audit copy, the upload itself proceeds.
		xcontext.Logger(ctx).Warnf("Cannot archive guest list of event %s: %v", event.ID, err)
		return
	}

	xcontext.Logger(ctx).Infof("Archived guest list of event %s at %s", event.ID, resp.Url)
}

// run drives one batch through pin, anchor, notify, and persist. Failures of
// the external writes are reported as a structured failed response rather
// than an error; validation problems are errors.
func (d *batchDomain) run(
	ctx context.Context, event *entity.Event, holders []model.Holder, resume *model.ResumePoint,
) (*model.BatchResponse, error) {
	inputs := make([]anchor.LeafInput, len(holders))
	for i, holder := range holders {
		inputs[i] = anchor.LeafInput{
			FirstName:        holder.FirstName,
			LastName:         holder.LastName,
			Email:            holder.Email,
			EventName:        event.Name,
			ExternalTicketID: holder.ExternalTicketID,
		}
	}

	commitment, resp := d.publish(ctx, event, inputs, resume)
	if commitment == nil {
		d.announce(ctx, event, resp)
		return resp, nil
	}

	resp = &model.BatchResponse{
		State:          BatchStateAnchored,
		BatchID:        commitment.BatchID,
		MerkleRoot:     commitment.MerkleRoot.Hex(),
		ContentAddress: commitment.ContentAddress,
		AnchorTrx:      commitment.AnchorTrx,
		Recipients:     make([]model.RecipientResult, len(holders)),
	}
	for i, holder := range holders {
		resp.Recipients[i] = model.RecipientResult{
			FirstName: holder.FirstName,
			LastName:  holder.LastName,
			Email:     holder.Email,
		}
	}

	results, mailedAt := d.notify(ctx, event, holders, commitment.BatchID, resp)
	if results == nil {
		d.announce(ctx, event, resp)
		return resp, nil
	}

	resp.State = BatchStateNotified
	d.persist(ctx, event, holders, commitment.BatchID, results, mailedAt, resp)
	d.announce(ctx, event, resp)

	return resp, nil
}

func (d *batchDomain) publish(
	ctx context.Context, event *entity.Event, inputs []anchor.LeafInput, resume *model.ResumePoint,
) (*anchor.Commitment, *model.BatchResponse) {
	if resume != nil && resume.AnchorTrx != "" {
		// Anchored on a previous attempt; only notify and persist remain.
		leaves, err := anchor.EncodeLeaves(inputs, resume.BatchID)
		if err != nil {
			return nil, &model.BatchResponse{
				State:         BatchStateFailed,
				BatchID:       resume.BatchID,
				FailureReason: err.Error(),
			}
		}

		tree, err := merkle.NewTree(leaves)
		if err != nil {
			return nil, &model.BatchResponse{
				State:         BatchStateFailed,
				BatchID:       resume.BatchID,
				FailureReason: err.Error(),
			}
		}

		return &anchor.Commitment{
			BatchID:        resume.BatchID,
			MerkleRoot:     tree.Root(),
			ContentAddress: resume.ContentAddress,
			AnchorTrx:      resume.AnchorTrx,
			Leaves:         leaves,
		}, nil
	}

	var anchorResume *anchor.ResumePoint
	if resume != nil {
		anchorResume = &anchor.ResumePoint{
			BatchID:        resume.BatchID,
			ContentAddress: resume.ContentAddress,
		}
	}

	commitment, err := d.publisher.Publish(ctx, event.ContractAddress, inputs, anchorResume)
	if err == nil {
		return commitment, nil
	}

	xcontext.Logger(ctx).Errorf("Cannot publish batch for event %s: %v", event.Name, err)
	resp := &model.BatchResponse{State: BatchStateFailed, FailureReason: err.Error()}
	if publishErr, ok := err.(*anchor.PublishError); ok {
		resp.BatchID = publishErr.BatchID
		resp.ContentAddress = publishErr.ContentAddress
		resp.FailureReason = fmt.Sprintf("%s: %v", publishErr.Stage, publishErr.Err)
	}

	return nil, resp
}

func (d *batchDomain) notify(
	ctx context.Context, event *entity.Event, holders []model.Holder,
	batchID int64, resp *model.BatchResponse,
) ([]mail.SendResult, time.Time) {
	destinations := make([]mail.Destination, len(holders))
	for i, holder := range holders {
		destinations[i] = mail.Destination{
			ToAddress: holder.Email,
			TemplateData: map[string]any{
				"contact": map[string]any{"firstName": holder.FirstName},
				"claim":   map[string]any{"url": claimURL(event, holder, batchID)},
			},
		}
	}

	mailedAt := time.Now()
	results, err := d.mailer.SendBulkTemplated(ctx, event.EmailTemplate, destinations)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send claim mails of batch %d: %v", batchID, err)
		resp.State = BatchStateFailed
		resp.FailureReason = fmt.Sprintf("mail dispatch: %v", err)
		return nil, mailedAt
	}

	for i := range results {
		resp.Recipients[i].MailSent = results[i].Sent()
		resp.Recipients[i].MessageID = results[i].MessageID
		if !results[i].Sent() {
			resp.Recipients[i].Error = results[i].Err
		}
	}

	return results, mailedAt
}

// persist writes one ticket row per recipient whose mail went out. A
// recipient whose mail failed keeps no row and no state penalty: the holder
// is enumerated in the result and re-ingested later. Only a failed ledger
// write of a mailed recipient fails the batch.
func (d *batchDomain) persist(
	ctx context.Context, event *entity.Event, holders []model.Holder,
	batchID int64, results []mail.SendResult, mailedAt time.Time,
	resp *model.BatchResponse,
) {
	maxDays := dateutil.DaysBetweenInclusive(
		event.LastAllowedEntryDate, event.FirstAllowedEntryDate)

	allPersisted := true
	for i, holder := range holders {
		if !results[i].Sent() {
			continue
		}

		ticket := &entity.Ticket{
			Base:                  entity.Base{ID: uuid.NewString()},
			EventID:               event.ID,
			FirstName:             holder.FirstName,
			LastName:              holder.LastName,
			Email:                 holder.Email,
			BatchID:               batchID,
			ContractAddress:       event.ContractAddress,
			MailSent:              true,
			MailSentAt:            mailedAt,
			MessageID:             sql.NullString{String: results[i].MessageID, Valid: results[i].MessageID != ""},
			MaxDaysEntry:          maxDays,
			FirstAllowedEntryDate: event.FirstAllowedEntryDate,
			LastAllowedEntryDate:  event.LastAllowedEntryDate,
		}
		if holder.ExternalTicketID != "" {
			ticket.ExternalTicketID = sql.NullString{String: holder.ExternalTicketID, Valid: true}
		}

		if err := d.ticketRepo.Create(ctx, ticket); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot persist ticket of %s in batch %d: %v",
				holder.Email, batchID, err)
			resp.Recipients[i].Error = err.Error()
			allPersisted = false
			continue
		}

		resp.Recipients[i].Persisted = true
	}

	if allPersisted {
		resp.State = BatchStatePersisted
	} else {
		resp.State = BatchStateFailed
		resp.FailureReason = "some notified recipients were not persisted"
	}
}

func (d *batchDomain) announce(ctx context.Context, event *entity.Event, resp *model.BatchResponse) {
	cfg := xcontext.Configs(ctx)
	if d.bus == nil || cfg.Kafka.BatchTopic == "" {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"event_id": event.ID,
		"batch":    resp,
	})
	if err != nil {
		return
	}

	pack := &pubsub.Pack{Key: []byte(event.ContractAddress), Msg: msg}
	if err := d.bus.Publish(ctx, cfg.Kafka.BatchTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot announce batch %d of event %s: %v",
			resp.BatchID, event.ID, err)
	}
}

// claimURL builds the link mailed to the holder. The query fields mirror the
// leaf preimage so the claim page can reconstruct the exact hash.
func claimURL(event *entity.Event, holder model.Holder, batchID int64) string {
	base := strings.TrimSuffix(event.BaseClaimURL, "/")
	return fmt.Sprintf("%s/claim?emailid=%s&lastname=%s&firstname=%s&batchid=%d&eventname=%s",
		base,
		api.PercentEncode(holder.Email),
		api.PercentEncode(holder.LastName),
		api.PercentEncode(holder.FirstName),
		batchID,
		api.PercentEncode(event.Name),
	)
}

// parseGuestList reads "ticketId,name,email" rows. The first row is a
// header; the name column is split on its first space into first and last
// name, single-word names become both.
func parseGuestList(raw string) ([]model.Holder, error) {
	reader := csv.NewReader(strings.NewReader(strings.ReplaceAll(raw, "\r\n", "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, nil
	}

	holders := make([]model.Holder, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("guest row needs ticketId, name, email, got %d fields", len(record))
		}

		ticketID := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		email := strings.TrimSpace(record[2])
		if name == "" || email == "" {
			return nil, fmt.Errorf("guest row with empty name or email")
		}

		firstName, lastName, found := strings.Cut(name, " ")
		if !found {
			lastName = firstName
		}

		holders = append(holders, model.Holder{
			FirstName:        firstName,
			LastName:         strings.TrimSpace(lastName),
			Email:            email,
			ExternalTicketID: ticketID,
		})
	}

	return holders, nil
}
