package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
)

type MockEthClient struct {
	CurrentBatchIDFunc func(ctx context.Context, contractAddress string) (int64, error)
	AddBatchFunc       func(ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string) (string, error)
	AddMinterFunc      func(ctx context.Context, contractAddress string) (string, error)
}

func (m *MockEthClient) CurrentBatchID(ctx context.Context, contractAddress string) (int64, error) {
	if m.CurrentBatchIDFunc != nil {
		return m.CurrentBatchIDFunc(ctx, contractAddress)
	}

	return 0, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockEthClient) AddBatch(
	ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string,
) (string, error) {
	if m.AddBatchFunc != nil {
		return m.AddBatchFunc(ctx, contractAddress, merkleRoot, contentAddress)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockEthClient) AddMinter(ctx context.Context, contractAddress string) (string, error) {
	if m.AddMinterFunc != nil {
		return m.AddMinterFunc(ctx, contractAddress)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}

// InMemoryChain mimics the batch counter contract: AddBatch increments the
// per-contract counter the way a mined transaction would.
type InMemoryChain struct {
	mutex    sync.Mutex
	counters map[string]int64

	Anchors []AnchorCall
}

type AnchorCall struct {
	ContractAddress string
	MerkleRoot      common.Hash
	ContentAddress  string
}

func NewInMemoryChain() *InMemoryChain {
	return &InMemoryChain{counters: make(map[string]int64)}
}

func (c *InMemoryChain) CurrentBatchID(ctx context.Context, contractAddress string) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.counters[contractAddress], nil
}

func (c *InMemoryChain) AddBatch(
	ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string,
) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.counters[contractAddress]++
	c.Anchors = append(c.Anchors, AnchorCall{
		ContractAddress: contractAddress,
		MerkleRoot:      merkleRoot,
		ContentAddress:  contentAddress,
	})

	return fmt.Sprintf("0xtrx%d", len(c.Anchors)), nil
}

func (c *InMemoryChain) AddMinter(ctx context.Context, contractAddress string) (string, error) {
	return "0xminter", nil
}
