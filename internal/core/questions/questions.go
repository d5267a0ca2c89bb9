// Package questions holds the fixed prompt registry
package questions

import (
	"strings"
)

// Unknown is the text reported for an id outside the registry
const Unknown = "Unknown question"

// Question is one registry entry
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

var registry = []Question{
	{ID: 0, Text: "What did you do today?"},
	{ID: 1, Text: "What are you thinking about?"},
	{ID: 2, Text: "What are your dreams for the future?"},
}

// All returns a copy of the registry in id order
func All() []Question {
	return append([]Question(nil), registry...)
}

// Known reports whether id is in the registry
func Known(id int) bool {
	_, ok := lookup(id)
	return ok
}

// Text returns the question for id or Unknown
func Text(id int) string {
	if q, ok := lookup(id); ok {
		return q.Text
	}
	return Unknown
}

// Prompt builds the scoring trace "q:<question> a:<answer>", the answer lower-cased
func Prompt(id int, answer string) string {
	var b strings.Builder
	q := Text(id)
	b.Grow(len(q) + len(answer) + 5)
	b.WriteString("q:")
	b.WriteString(q)
	b.WriteString(" a:")
	b.WriteString(strings.ToLower(answer))
	return b.String()
}

func lookup(id int) (Question, bool) {
	for _, q := range registry {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
