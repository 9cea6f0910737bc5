// Package audit structures and persists authorization justification records.
// Records are privacy-preserving by construction: the message content is
// never stored, only its SHA-256 digest.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/dkarpele/havengate/internal/model"
)

// timeFormat is the timestamp layout used in records and the JSONL log.
const timeFormat = "2006-01-02T15:04:05.000Z"

// Record is one write-once justification entry for an authorization
// decision. All fields are flat values (no maps) to guarantee deterministic
// json.Marshal field order for reproducible chain hashing.
type Record struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"ts"`
	CallerID    string          `json:"caller_id"`
	Tier        model.Tier      `json:"tier"`
	Risk        model.RiskLevel `json:"risk"`
	Authorized  bool            `json:"authorized"`
	Reason      string          `json:"reason"`
	SessionID   string          `json:"session_id"`
	ContentHash string          `json:"content_hash"`
	PrevHash    string          `json:"prev_hash,omitempty"`
}

// NewRecord builds a Record for one decision. The message text is hashed
// immediately and discarded; an absent session id is recorded as "unknown".
func NewRecord(callerID string, t model.Tier, risk model.RiskLevel, authorized bool, reason, sessionID, message string) Record {
	if sessionID == "" {
		sessionID = "unknown"
	}
	if callerID == "" {
		callerID = "anonymous"
	}
	return Record{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC().Format(timeFormat),
		CallerID:    callerID,
		Tier:        t,
		Risk:        risk,
		Authorized:  authorized,
		Reason:      reason,
		SessionID:   sessionID,
		ContentHash: HashContent(message),
	}
}

// HashContent returns "sha256:<hex>" of the message text.
func HashContent(message string) string {
	h := sha256.Sum256([]byte(message))
	return "sha256:" + hex.EncodeToString(h[:])
}
