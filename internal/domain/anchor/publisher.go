package anchor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chain-labs/simplr-events-server-v2/pkg/api/pinata"
	"github.com/chain-labs/simplr-events-server-v2/pkg/blockchain/eth"
	"github.com/chain-labs/simplr-events-server-v2/pkg/cidutil"
	"github.com/chain-labs/simplr-events-server-v2/pkg/merkle"
	"github.com/chain-labs/simplr-events-server-v2/pkg/redis"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type Stage string

const (
	StageContentPin   Stage = "content_pin"
	StageLedgerAnchor Stage = "ledger_anchor"
)

// PublishError reports which external write failed. When the content pin
// succeeded but the ledger anchor did not, ContentAddress carries the already
// obtained identifier: the pin is never retracted (the store is append-only),
// and a retry resumes from it instead of pinning again.
type PublishError struct {
	Stage          Stage
	BatchID        int64
	ContentAddress string
	Err            error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed at %s: %v", e.Stage, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// ResumePoint restarts a publish whose pin already succeeded. Leaves are
// re-encoded for the recorded batch id and the pin step is skipped.
type ResumePoint struct {
	BatchID        int64
	ContentAddress string
}

// Commitment is the anchored result of one batch publish. Immutable once
// returned.
type Commitment struct {
	BatchID        int64
	MerkleRoot     common.Hash
	ContentAddress string
	AnchorTrx      string
	AnchoredAt     time.Time
	Leaves         []common.Hash
}

type Publisher struct {
	chain        eth.Client
	contentStore pinata.IEndpoint
	locker       redis.Locker
}

func NewPublisher(chain eth.Client, contentStore pinata.IEndpoint, locker redis.Locker) *Publisher {
	return &Publisher{
		chain:        chain,
		contentStore: contentStore,
		locker:       locker,
	}
}

var ErrNoInputs = errors.New("cannot publish a batch without holders")

// Publish pins the leaf set and anchors its merkle root, allocating the next
// batch id from the ledger counter. The counter read and the anchor write are
// serialized per contract address; without the lock two concurrent publishes
// could allocate the same id and silently cross-wire holders and batches.
func (p *Publisher) Publish(
	ctx context.Context, contractAddress string, inputs []LeafInput, resume *ResumePoint,
) (*Commitment, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	var commitment *Commitment
	err := p.locker.WithLock(ctx, contractAddress, func(ctx context.Context) error {
		var err error
		commitment, err = p.publishLocked(ctx, contractAddress, inputs, resume)
		return err
	})
	if err != nil {
		return nil, err
	}

	return commitment, nil
}

func (p *Publisher) publishLocked(
	ctx context.Context, contractAddress string, inputs []LeafInput, resume *ResumePoint,
) (*Commitment, error) {
	var batchID int64
	if resume != nil {
		batchID = resume.BatchID
	} else {
		counter, err := p.chain.CurrentBatchID(ctx, contractAddress)
		if err != nil {
			return nil, &PublishError{Stage: StageLedgerAnchor, Err: err}
		}

		batchID = counter + 1
	}

	leaves, err := EncodeLeaves(inputs, batchID)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.NewTree(leaves)
	if err != nil {
		return nil, err
	}

	var contentAddress string
	if resume != nil {
		contentAddress = resume.ContentAddress
	} else {
		document := make([]string, len(leaves))
		for i, leaf := range leaves {
			document[i] = leaf.Hex()
		}

		contentAddress, err = p.contentStore.PinJSON(ctx, document)
		if err != nil {
			return nil, &PublishError{Stage: StageContentPin, BatchID: batchID, Err: err}
		}

		if err := cidutil.Validate(contentAddress); err != nil {
			return nil, &PublishError{Stage: StageContentPin, BatchID: batchID, Err: err}
		}
	}

	trx, err := p.chain.AddBatch(ctx, contractAddress, tree.Root(), contentAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf(
			"Anchor of batch %d on %s failed, pinned content %s stays orphaned: %v",
			batchID, contractAddress, contentAddress, err)
		return nil, &PublishError{
			Stage:          StageLedgerAnchor,
			BatchID:        batchID,
			ContentAddress: contentAddress,
			Err:            err,
		}
	}

	return &Commitment{
		BatchID:        batchID,
		MerkleRoot:     tree.Root(),
		ContentAddress: contentAddress,
		AnchorTrx:      trx,
		AnchoredAt:     time.Now(),
		Leaves:         leaves,
	}, nil
}
