package eth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/chain-labs/simplr-events-server-v2/config"
)

const RpcTimeOut = time.Second * 5

// Client wraps the RPC interactions with the events contract so that domain
// code can be tested against a mock.
type Client interface {
	// CurrentBatchID reads the contract's batch counter.
	CurrentBatchID(ctx context.Context, contractAddress string) (int64, error)

	// AddBatch submits an anchor transaction and waits until it is mined.
	// It returns the transaction hash. A timeout while waiting is an error;
	// the caller must not assume the anchor landed.
	AddBatch(ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string) (string, error)

	// AddMinter grants the configured wallet the minter role on the contract.
	AddMinter(ctx context.Context, contractAddress string) (string, error)
}

type defaultClient struct {
	cfg config.ChainConfigs

	client     *ethclient.Client
	abi        abi.ABI
	privateKey *ecdsa.PrivateKey
}

func NewClient(cfg config.ChainConfigs) (*defaultClient, error) {
	client, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		return nil, fmt.Errorf("cannot dial rpc %s: %w", cfg.RPCEndpoint, err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(eventsContractABI))
	if err != nil {
		return nil, err
	}

	privateKey, err := ethcrypto.HexToECDSA(cfg.MinterKey)
	if err != nil {
		return nil, fmt.Errorf("invalid minter key: %w", err)
	}

	return &defaultClient{
		cfg:        cfg,
		client:     client,
		abi:        parsedABI,
		privateKey: privateKey,
	}, nil
}

func (c *defaultClient) CurrentBatchID(ctx context.Context, contractAddress string) (int64, error) {
	data, err := c.abi.Pack("currentBatchId")
	if err != nil {
		return 0, err
	}

	callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	to := common.HexToAddress(contractAddress)
	raw, err := c.client.CallContract(callCtx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot read batch counter of %s: %w", contractAddress, err)
	}

	values, err := c.abi.Unpack("currentBatchId", raw)
	if err != nil {
		return 0, err
	}

	counter, ok := abi.ConvertType(values[0], new(big.Int)).(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected counter type %T", values[0])
	}

	return counter.Int64(), nil
}

func (c *defaultClient) AddBatch(
	ctx context.Context, contractAddress string, merkleRoot common.Hash, contentAddress string,
) (string, error) {
	return c.transact(ctx, contractAddress, "addBatch", [32]byte(merkleRoot), contentAddress)
}

func (c *defaultClient) AddMinter(ctx context.Context, contractAddress string) (string, error) {
	minter := ethcrypto.PubkeyToAddress(c.privateKey.PublicKey)
	return c.transact(ctx, contractAddress, "addNewMinter", minter)
}

func (c *defaultClient) transact(
	ctx context.Context, contractAddress, method string, args ...any,
) (string, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, big.NewInt(c.cfg.ChainID))
	if err != nil {
		return "", err
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(
		common.HexToAddress(contractAddress), c.abi, c.client, c.client, c.client)

	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		// Another node may have submitted the same transaction already.
		// Ethereum gives no error code for this, so string matching it is.
		if strings.Contains(err.Error(), "already known") && tx != nil {
			return tx.Hash().Hex(), nil
		}

		return "", fmt.Errorf("cannot submit %s to %s: %w", method, contractAddress, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.client, tx)
	if err != nil {
		return "", fmt.Errorf("confirmation of %s timed out: %w", tx.Hash(), err)
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", fmt.Errorf("transaction %s reverted", tx.Hash())
	}

	return tx.Hash().Hex(), nil
}
