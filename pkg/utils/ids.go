package utils

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteLength   = 8
	suffixLength   = 4
)

// Vietnamese đ/Đ is a distinct letter, not a d with a combining mark.
var letterFolds = strings.NewReplacer("đ", "d", "Đ", "d")

// Slugify lower-cases value, strips diacritics and keeps only [a-z0-9-].
func Slugify(value string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		letterFolds.Replace(value),
	)
	if err != nil {
		folded = value
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}

func randomString(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}

// SlugID builds a readable id such as "alpha-x7k2". fallback is used when
// label has no sluggable characters.
func SlugID(label, fallback string) string {
	base := Slugify(label)
	if base == "" {
		base = fallback
	}
	return base + "-" + randomString(suffixAlphabet, suffixLength)
}

// KindID builds a time-ordered id such as "member-lx3k9q2a-0f3z".
func KindID(kind string, now time.Time) string {
	return kind + "-" + strconv.FormatInt(now.UnixMilli(), 36) + "-" + randomString(suffixAlphabet, suffixLength)
}

// InviteCode returns a fresh 8-character upper-case alphanumeric code.
func InviteCode() string {
	return randomString(inviteAlphabet, inviteLength)
}
