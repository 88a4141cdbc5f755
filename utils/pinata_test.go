package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPinataServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPinataUploadFile(t *testing.T) {
	srv := newPinataServer(t, http.StatusOK, `{"IpfsHash":"QmImageCID","PinSize":1024,"Timestamp":"2026-01-01T00:00:00Z"}`)
	client := NewPinataClient(srv.URL, "test-jwt", "", "https://gateway.pinata.cloud", 5*time.Second)

	cid, err := client.UploadFile([]byte("fake png bytes"), "cert.png", map[string]string{"type": "certificate-image"})
	require.NoError(t, err)
	assert.Equal(t, "QmImageCID", cid)
}

func TestPinataUploadJSON(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"IpfsHash":"QmJsonCID"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewPinataClient(srv.URL, "test-jwt", "", "https://gateway.pinata.cloud", 5*time.Second)

	cid, err := client.UploadJSON(map[string]string{"name": "Blockchain 101"}, "meta.json", map[string]string{"type": "certificate-metadata"})
	require.NoError(t, err)
	assert.Equal(t, "QmJsonCID", cid)

	// The pinned content is wrapped in pinataContent per the Pinata API
	var reqBody struct {
		PinataContent  map[string]string `json:"pinataContent"`
		PinataMetadata struct {
			Name string `json:"name"`
		} `json:"pinataMetadata"`
	}
	require.NoError(t, json.Unmarshal(captured, &reqBody))
	assert.Equal(t, "Blockchain 101", reqBody.PinataContent["name"])
	assert.Equal(t, "meta.json", reqBody.PinataMetadata.Name)
}

func TestPinataUploadErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"auth rejected", http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"no hash in response", http.StatusOK, `{"PinSize":10}`},
		{"garbage response", http.StatusOK, `not json`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newPinataServer(t, tc.status, tc.body)
			client := NewPinataClient(srv.URL, "test-jwt", "", "https://gateway.pinata.cloud", 5*time.Second)

			_, err := client.UploadFile([]byte("data"), "cert.png", nil)
			assert.Error(t, err)
		})
	}
}

func TestPinataGatewayURL(t *testing.T) {
	dedicated := NewPinataClient("https://api.pinata.cloud", "jwt", "https://mygw.mypinata.cloud/", "https://gateway.pinata.cloud", time.Second)
	assert.Equal(t, "https://mygw.mypinata.cloud/ipfs/QmX", dedicated.GatewayURL("QmX"))

	fallback := NewPinataClient("https://api.pinata.cloud", "jwt", "", "https://gateway.pinata.cloud/", time.Second)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmX", fallback.GatewayURL("QmX"))
}
