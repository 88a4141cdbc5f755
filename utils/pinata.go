package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// PinataClient uploads blobs and JSON documents to the Pinata pinning
// service. It performs no retries; retrying a failed upload is the
// caller's decision.
type PinataClient struct {
	client     *resty.Client
	apiURL     string
	gatewayURL string
	fallback   string
}

// pinataPinResponse is the relevant part of Pinata's pin responses
type pinataPinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// NewPinataClient builds a client for the given Pinata API endpoint.
// gatewayURL is the dedicated gateway; when empty, fallbackGateway is
// used to resolve CIDs.
func NewPinataClient(apiURL, jwt, gatewayURL, fallbackGateway string, timeout time.Duration) *PinataClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetAuthToken(jwt).
		SetTimeout(timeout)

	return &PinataClient{
		client:     client,
		apiURL:     apiURL,
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		fallback:   strings.TrimRight(fallbackGateway, "/"),
	}
}

// UploadFile pins raw bytes as a named file and returns the CID.
func (p *PinataClient) UploadFile(data []byte, name string, keyvalues map[string]string) (string, error) {
	metadata, err := pinataMetadata(name, keyvalues)
	if err != nil {
		return "", err
	}

	resp, err := p.client.R().
		SetFileReader("file", name, strings.NewReader(string(data))).
		SetFormData(map[string]string{"pinataMetadata": metadata}).
		Post("/pinning/pinFileToIPFS")
	if err != nil {
		return "", fmt.Errorf("pinata request failed: %v", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("pinata returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return parsePinResponse(resp.Body())
}

// UploadJSON pins an object as a JSON document and returns the CID.
func (p *PinataClient) UploadJSON(v interface{}, name string, keyvalues map[string]string) (string, error) {
	kv := map[string]interface{}{}
	for k, val := range keyvalues {
		kv[k] = val
	}

	body := map[string]interface{}{
		"pinataContent": v,
		"pinataMetadata": map[string]interface{}{
			"name":      name,
			"keyvalues": kv,
		},
	}

	resp, err := p.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/pinning/pinJSONToIPFS")
	if err != nil {
		return "", fmt.Errorf("pinata request failed: %v", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("pinata returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return parsePinResponse(resp.Body())
}

// GatewayURL resolves a CID through the dedicated gateway, falling back
// to the public gateway when none is configured.
func (p *PinataClient) GatewayURL(cid string) string {
	base := p.gatewayURL
	if base == "" {
		base = p.fallback
	}
	return base + "/ipfs/" + cid
}

func parsePinResponse(body []byte) (string, error) {
	var pinResp pinataPinResponse
	if err := json.Unmarshal(body, &pinResp); err != nil {
		return "", fmt.Errorf("failed to parse pinata response: %v", err)
	}
	if pinResp.IpfsHash == "" {
		return "", fmt.Errorf("pinata response has no IpfsHash: %s", string(body))
	}
	return pinResp.IpfsHash, nil
}

func pinataMetadata(name string, keyvalues map[string]string) (string, error) {
	kv := map[string]interface{}{}
	for k, v := range keyvalues {
		kv[k] = v
	}
	raw, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"keyvalues": kv,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build pinata metadata: %v", err)
	}
	return string(raw), nil
}
