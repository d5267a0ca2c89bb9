// Package canon defines the canonical stored form of a submission and its digest
package canon

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashLen is the length of a text hash
const HashLen = md5.Size * 2

// Text lower-cases s, the result is what gets stored and hashed
func Text(s string) string {
	// cases.Caser keeps state, so one per call
	return cases.Lower(language.Und).String(s)
}

// Hash is the lowercase hex md5 of "<questionID>:" + Text(s)
// the same answer given to two questions is two submissions
func Hash(questionID int, s string) string {
	sum := md5.Sum([]byte(strconv.Itoa(questionID) + ":" + Text(s)))
	return hex.EncodeToString(sum[:])
}

// ValidHash reports whether h looks like a Hash output
func ValidHash(h string) bool {
	if len(h) != HashLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
