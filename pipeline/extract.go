package pipeline

import "encoding/json"

// The minting service has answered with several response shapes over
// time: the transaction hash nested under the chain that minted
// ("avalanche" or "arbitrum"), or flat at the top level under one of a
// few legacy field names. Extraction rules are tried in priority order,
// first match wins. New upstream shapes are a one-line addition here.
var txHashRules = [][]string{
	{"avalanche", "transactionHash"},
	{"arbitrum", "transactionHash"},
	{"transactionHash"},
	{"txHash"},
	{"hash"},
}

// extractTransactionHashes pulls the primary transaction hash out of a
// raw mint response, plus the Arbitrum hash when the response carries
// one alongside the primary. Returns a LedgerError when no rule matches.
func extractTransactionHashes(body []byte) (string, string, error) {
	var resp map[string]interface{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", &LedgerError{Message: "unparseable mint response", Body: string(body)}
	}

	var primary string
	for _, rule := range txHashRules {
		if v := lookupPath(resp, rule); v != "" {
			primary = v
			break
		}
	}
	if primary == "" {
		return "", "", &LedgerError{Message: "no transaction hash received", Body: string(body)}
	}

	secondary := lookupPath(resp, []string{"arbitrum", "transactionHash"})
	if secondary == primary {
		secondary = ""
	}

	return primary, secondary, nil
}

// lookupPath walks nested JSON objects and returns the string at the
// given path, or "" when any segment is missing or not a string.
func lookupPath(obj map[string]interface{}, path []string) string {
	current := obj
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return ""
		}
		if i == len(path)-1 {
			s, _ := value.(string)
			return s
		}
		current, ok = value.(map[string]interface{})
		if !ok {
			return ""
		}
	}
	return ""
}
