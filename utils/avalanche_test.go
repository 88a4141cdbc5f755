package utils

import (
	"certchain/pipeline"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvalancheMint(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"avalanche":{"transactionHash":"0xfeed"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewAvalancheClient(srv.URL, 5*time.Second)

	req := &pipeline.MintRequest{
		Student:     pipeline.MintStudent{FullName: "Jane Doe"},
		Certificate: pipeline.MintCertificate{CourseName: "Blockchain 101"},
		IPFS:        pipeline.MintIPFS{MetadataHash: "QmMeta"},
	}

	status, body, err := client.Mint(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "0xfeed")

	// The payload goes over the wire with the nested contract shape
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(captured, &sent))
	assert.Contains(t, sent, "student")
	assert.Contains(t, sent, "certificate")
	assert.Contains(t, sent, "institution")
	assert.Contains(t, sent, "ipfs")
}

func TestAvalancheMintNonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"rpc node down"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewAvalancheClient(srv.URL, 5*time.Second)

	// The client reports the raw status; deciding what to do with a
	// non-2xx is the orchestrator's job.
	status, body, err := client.Mint(&pipeline.MintRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, string(body), "rpc node down")
}

func TestAvalancheMintTransportError(t *testing.T) {
	// Nothing listens here
	client := NewAvalancheClient("http://127.0.0.1:1", time.Second)

	_, _, err := client.Mint(&pipeline.MintRequest{})
	assert.Error(t, err)
}
