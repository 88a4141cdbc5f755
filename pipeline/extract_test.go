package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTransactionHashes(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		wantPrimary   string
		wantSecondary string
	}{
		{
			name:        "avalanche nested",
			body:        `{"avalanche":{"transactionHash":"0xaaa"}}`,
			wantPrimary: "0xaaa",
		},
		{
			name:          "avalanche and arbitrum",
			body:          `{"avalanche":{"transactionHash":"0xaaa"},"arbitrum":{"transactionHash":"0xbbb"}}`,
			wantPrimary:   "0xaaa",
			wantSecondary: "0xbbb",
		},
		{
			name:        "arbitrum only",
			body:        `{"arbitrum":{"transactionHash":"0xbbb"}}`,
			wantPrimary: "0xbbb",
		},
		{
			name:        "flat transactionHash",
			body:        `{"transactionHash":"0xccc"}`,
			wantPrimary: "0xccc",
		},
		{
			name:        "flat legacy txHash",
			body:        `{"txHash":"0xddd"}`,
			wantPrimary: "0xddd",
		},
		{
			name:        "flat legacy hash",
			body:        `{"hash":"0xeee"}`,
			wantPrimary: "0xeee",
		},
		{
			name:        "nested wins over flat",
			body:        `{"avalanche":{"transactionHash":"0xaaa"},"transactionHash":"0xccc"}`,
			wantPrimary: "0xaaa",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			primary, secondary, err := extractTransactionHashes([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrimary, primary)
			assert.Equal(t, tc.wantSecondary, secondary)
		})
	}
}

func TestExtractTransactionHashesErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"unrelated fields", `{"status":"ok","message":"minted"}`},
		{"nested but wrong key", `{"avalanche":{"tx":"0xaaa"}}`},
		{"non-string hash", `{"transactionHash":12345}`},
		{"not json", `minted!`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := extractTransactionHashes([]byte(tc.body))
			var ledgerErr *LedgerError
			assert.ErrorAs(t, err, &ledgerErr)
		})
	}
}
