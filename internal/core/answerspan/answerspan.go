// Package answerspan isolates the answer tokens of a "q:<question> a:<answer>" trace
package answerspan

import "strings"

// DefaultMarker separates question and answer in the scored prompt
const DefaultMarker = " a:"

// TokenScore is one token of an inference trace
type TokenScore struct {
	Token       string  `json:"token"`
	Perplexity  float64 `json:"perplexity"`
	Probability float64 `json:"probability"`
}

// Start returns the index of the first answer token
// with no marker in the joined text the whole trace is the answer
// a token that straddles the end of the marker is counted as answer
func Start(tokens []TokenScore, marker string) int {
	if marker == "" {
		marker = DefaultMarker
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Token)
	}
	idx := strings.Index(b.String(), marker)
	if idx < 0 {
		return 0
	}
	offset := idx + len(marker)

	end := 0
	for i, t := range tokens {
		end += len(t.Token)
		if end > offset {
			return i
		}
	}
	// marker closes the text, nothing follows it
	return len(tokens)
}

// Extract returns the answer suffix of tokens
func Extract(tokens []TokenScore, marker string) []TokenScore {
	return tokens[Start(tokens, marker):]
}
