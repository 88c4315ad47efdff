package anchor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/chain-labs/simplr-events-server-v2/pkg/merkle"
	"github.com/chain-labs/simplr-events-server-v2/pkg/testutil"
)

func testInputs(n int) []LeafInput {
	inputs := make([]LeafInput, n)
	for i := range inputs {
		inputs[i] = LeafInput{
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			Email:     fmt.Sprintf("holder%d@example.com", i),
			EventName: "devcon-2026",
		}
	}

	return inputs
}

func Test_Publisher_Publish(t *testing.T) {
	ctx := testutil.MockContext()
	chain := testutil.NewInMemoryChain()
	chain.AddBatch(ctx, "0xcontract", common.Hash{}, "")
	chain.AddBatch(ctx, "0xcontract", common.Hash{}, "")
	chain.Anchors = nil // two batches already on chain, counter is 2

	var pinned any
	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			pinned = document
			return testutil.Cid1, nil
		},
	}

	publisher := NewPublisher(chain, contentStore, testutil.NewInProcessLocker())

	inputs := testInputs(5)
	commitment, err := publisher.Publish(ctx, "0xcontract", inputs, nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, commitment.BatchID)
	require.Equal(t, testutil.Cid1, commitment.ContentAddress)
	require.NotEmpty(t, commitment.AnchorTrx)
	require.Len(t, commitment.Leaves, 5)

	leaves, err := EncodeLeaves(inputs, 3)
	require.NoError(t, err)
	tree, err := merkle.NewTree(leaves)
	require.NoError(t, err)
	require.Equal(t, tree.Root(), commitment.MerkleRoot)

	// The pinned document is the ordered hex leaf list.
	document, ok := pinned.([]string)
	require.True(t, ok)
	require.Len(t, document, 5)
	for i, leaf := range leaves {
		require.Equal(t, leaf.Hex(), document[i])
	}

	require.Len(t, chain.Anchors, 1)
	require.Equal(t, tree.Root(), chain.Anchors[0].MerkleRoot)
	require.Equal(t, testutil.Cid1, chain.Anchors[0].ContentAddress)
}

func Test_Publisher_Publish_noInputs(t *testing.T) {
	publisher := NewPublisher(
		testutil.NewInMemoryChain(), &testutil.MockPinataEndpoint{}, testutil.NewInProcessLocker())

	_, err := publisher.Publish(testutil.MockContext(), "0xcontract", nil, nil)
	require.ErrorIs(t, err, ErrNoInputs)
}

func Test_Publisher_Publish_pinFailed(t *testing.T) {
	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			return "", errors.New("pinata is down")
		},
	}

	publisher := NewPublisher(
		testutil.NewInMemoryChain(), contentStore, testutil.NewInProcessLocker())

	_, err := publisher.Publish(testutil.MockContext(), "0xcontract", testInputs(2), nil)

	publishErr := &PublishError{}
	require.ErrorAs(t, err, &publishErr)
	require.Equal(t, StageContentPin, publishErr.Stage)
	require.EqualValues(t, 1, publishErr.BatchID)
	require.Empty(t, publishErr.ContentAddress)
}

func Test_Publisher_Publish_malformedContentAddress(t *testing.T) {
	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			return "not-a-cid", nil
		},
	}

	publisher := NewPublisher(
		testutil.NewInMemoryChain(), contentStore, testutil.NewInProcessLocker())

	_, err := publisher.Publish(testutil.MockContext(), "0xcontract", testInputs(2), nil)

	publishErr := &PublishError{}
	require.ErrorAs(t, err, &publishErr)
	require.Equal(t, StageContentPin, publishErr.Stage)
}

func Test_Publisher_Publish_anchorFailed(t *testing.T) {
	chain := &testutil.MockEthClient{
		CurrentBatchIDFunc: func(ctx context.Context, contractAddress string) (int64, error) {
			return 6, nil
		},
		AddBatchFunc: func(
			ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string,
		) (string, error) {
			return "", errors.New("rpc timeout")
		},
	}

	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			return testutil.Cid2, nil
		},
	}

	publisher := NewPublisher(chain, contentStore, testutil.NewInProcessLocker())

	_, err := publisher.Publish(testutil.MockContext(), "0xcontract", testInputs(3), nil)

	// The pin is kept so the caller can resume without pinning again.
	publishErr := &PublishError{}
	require.ErrorAs(t, err, &publishErr)
	require.Equal(t, StageLedgerAnchor, publishErr.Stage)
	require.EqualValues(t, 7, publishErr.BatchID)
	require.Equal(t, testutil.Cid2, publishErr.ContentAddress)
}

func Test_Publisher_Publish_resumeSkipsPin(t *testing.T) {
	ctx := testutil.MockContext()

	chain := testutil.NewInMemoryChain()
	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			t.Fatal("resume must not pin again")
			return "", nil
		},
	}

	publisher := NewPublisher(chain, contentStore, testutil.NewInProcessLocker())

	inputs := testInputs(4)
	resume := &ResumePoint{BatchID: 9, ContentAddress: "QmResume"}
	commitment, err := publisher.Publish(ctx, "0xcontract", inputs, resume)
	require.NoError(t, err)
	require.EqualValues(t, 9, commitment.BatchID)
	require.Equal(t, "QmResume", commitment.ContentAddress)

	// The leaves are re-encoded for the resumed batch id, not a fresh one.
	leaves, err := EncodeLeaves(inputs, 9)
	require.NoError(t, err)
	tree, err := merkle.NewTree(leaves)
	require.NoError(t, err)
	require.Equal(t, tree.Root(), commitment.MerkleRoot)
	require.Equal(t, tree.Root(), chain.Anchors[0].MerkleRoot)
}

func Test_Publisher_Publish_concurrentDistinctBatchIDs(t *testing.T) {
	ctx := testutil.MockContext()
	chain := testutil.NewInMemoryChain()
	contentStore := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, document any) (string, error) {
			return testutil.Cid1, nil
		},
	}

	publisher := NewPublisher(chain, contentStore, testutil.NewInProcessLocker())

	const publishes = 8
	batchIDs := make([]int64, publishes)

	eg := errgroup.Group{}
	for i := 0; i < publishes; i++ {
		i := i
		eg.Go(func() error {
			commitment, err := publisher.Publish(ctx, "0xcontract", testInputs(i+1), nil)
			if err != nil {
				return err
			}

			batchIDs[i] = commitment.BatchID
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	seen := map[int64]bool{}
	for _, id := range batchIDs {
		require.False(t, seen[id], "batch id %d was allocated twice", id)
		require.GreaterOrEqual(t, id, int64(1))
		require.LessOrEqual(t, id, int64(publishes))
		seen[id] = true
	}
}
