package internal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Deduplicator drops transcripts whose conversation is identical to one already seen.
// Saving the same resumed session twice yields two transcripts with different IDs
// but the same message log; exports only need one of them.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate keeps the first session of every distinct conversation, in input order
func (d *Deduplicator) Deduplicate(sessions []*Session) []*Session {
	seen := make(map[string]bool)
	var unique []*Session

	for _, session := range sessions {
		hash := Fingerprint(session)
		if !seen[hash] {
			seen[hash] = true
			unique = append(unique, session)
		}
	}

	return unique
}

// Fingerprint hashes the conversation content of a session.
// Session IDs, message IDs and favorite flags do not contribute.
func Fingerprint(session *Session) string {
	h := sha256.New()

	for _, msg := range session.Messages {
		h.Write([]byte(msg.Actor))
		h.Write([]byte{0})
		h.Write([]byte(msg.Content))
		h.Write([]byte{0})
		h.Write([]byte(msg.Timestamp))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
