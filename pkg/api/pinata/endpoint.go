package pinata

import (
	"context"
	"errors"
	"fmt"

	"github.com/chain-labs/simplr-events-server-v2/config"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api"
)

type Endpoint struct {
	Token string

	apiGenerator api.Generator
}

func New(cfg config.PinataConfigs) *Endpoint {
	return &Endpoint{
		Token:        cfg.Token,
		apiGenerator: api.NewGenerator("https://api.pinata.cloud"),
	}
}

// PinJSON pins the document to IPFS and returns its content identifier. The
// pin is append-only; there is no unpin counterpart here on purpose.
func (e *Endpoint) PinJSON(ctx context.Context, document any) (string, error) {
	resp, err := e.apiGenerator.New("/pinning/pinJSONToIPFS").
		Body(api.RawJSON{V: document}).
		POST(ctx, api.OAuth2("Bearer", e.Token))
	if err != nil {
		return "", err
	}

	if resp.Code != 200 {
		return "", fmt.Errorf("pinata returned status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("fail to pin to ipfs")
	}

	cid, err := body.GetString("IpfsHash")
	if err != nil {
		return "", err
	}

	return cid, nil
}
