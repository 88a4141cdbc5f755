package utils

import (
	"certchain/pipeline"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AvalancheClient is a thin HTTP wrapper around the external minting
// service. It returns the raw status and body without interpretation;
// hash extraction is a pipeline-level concern tied to which chain
// answered.
type AvalancheClient struct {
	client  *resty.Client
	mintURL string
}

func NewAvalancheClient(mintURL string, timeout time.Duration) *AvalancheClient {
	return &AvalancheClient{
		client:  resty.New().SetTimeout(timeout),
		mintURL: mintURL,
	}
}

// Mint submits the anchoring payload and returns the HTTP status code
// and raw response body. A transport failure returns an error; a non-2xx
// status does not, the caller decides what to do with it.
func (a *AvalancheClient) Mint(req *pipeline.MintRequest) (int, []byte, error) {
	resp, err := a.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(a.mintURL)
	if err != nil {
		return 0, nil, fmt.Errorf("mint request failed: %v", err)
	}

	return resp.StatusCode(), resp.Body(), nil
}
