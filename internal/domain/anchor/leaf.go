package anchor

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chain-labs/simplr-events-server-v2/pkg/crypto"
)

// LeafInput is the identity of one holder destined for a batch. The batch id
// is not part of it because the id is only known once the ledger counter has
// been read.
type LeafInput struct {
	FirstName        string
	LastName         string
	Email            string
	EventName        string
	ExternalTicketID string
}

var ErrEmptyField = errors.New("all leaf fields must be non-empty")

// EncodeLeaf derives the holder's commitment hash. The concatenation order
// (email, last name, first name, batch id, event name) is part of the wire
// contract with the claim verifier: reordering the fields would invalidate
// every distributed claim link.
func EncodeLeaf(email, lastName, firstName string, batchID int64, eventName string) (common.Hash, error) {
	if email == "" || lastName == "" || firstName == "" || eventName == "" {
		return common.Hash{}, ErrEmptyField
	}

	if batchID < 0 {
		return common.Hash{}, fmt.Errorf("invalid batch id %d", batchID)
	}

	preimage := fmt.Sprintf("%s-%s-%s-%d-%s", email, lastName, firstName, batchID, eventName)
	return crypto.Keccak256([]byte(preimage)), nil
}

// EncodeLeaves hashes every input with the same batch id, preserving input
// order. The order is recorded before hashing so the pinned content, the
// merkle root, and the persisted rows agree on the holder-to-leaf mapping.
func EncodeLeaves(inputs []LeafInput, batchID int64) ([]common.Hash, error) {
	leaves := make([]common.Hash, 0, len(inputs))
	for _, input := range inputs {
		leaf, err := EncodeLeaf(input.Email, input.LastName, input.FirstName, batchID, input.EventName)
		if err != nil {
			return nil, err
		}

		leaves = append(leaves, leaf)
	}

	return leaves, nil
}
