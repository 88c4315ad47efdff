package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes data with the same keccak variant the events contract
// uses on chain.
func Keccak256(data ...[]byte) common.Hash {
	return common.BytesToHash(ethcrypto.Keccak256(data...))
}
