package cidutil

import (
	"fmt"

	"github.com/ipfs/go-cid"
)

// Validate checks that a content address returned by the pinning service is
// a well-formed CID. A malformed address would poison every claim link of
// the batch, so it is rejected before anchoring.
func Validate(contentAddress string) error {
	if _, err := cid.Decode(contentAddress); err != nil {
		return fmt.Errorf("invalid content address %s: %w", contentAddress, err)
	}

	return nil
}
