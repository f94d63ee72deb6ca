package activity

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/metrics"
)

// Type is the closed set of domain event kinds the log records.
type Type string

const (
	TypeEnrollment       Type = "enrollment"
	TypeCancellation     Type = "cancellation"
	TypeClassCreated     Type = "class_created"
	TypeClassUpdated     Type = "class_updated"
	TypeCheckIn          Type = "checkin"
	TypeMemberRegistered Type = "member_registered"
)

type Entry struct {
	ID        string            `json:"id"`
	Type      Type              `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	MemberID  *int              `json:"member_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Log is an append-only, bounded, in-process record of recent domain
// events. Once full, the oldest entries are silently dropped. It backs the
// staff "recent activity" view only; durable audit belongs to storage.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

const DefaultCapacity = 200

func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &Log{max: max}
}

func (l *Log) Append(t Type, message string, memberID *int, metadata map[string]string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry := Entry{
		ID:        newEntryID(now),
		Type:      t,
		Message:   message,
		Timestamp: now,
		MemberID:  memberID,
		Metadata:  metadata,
	}

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
	metrics.SetActivityLogEntries(len(l.entries))

	return entry
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (l *Log) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// newEntryID only needs to be unique enough for a UI list key; entries are
// never security tokens.
func newEntryID(now time.Time) string {
	return fmt.Sprintf("%d-%04x", now.UnixNano(), rand.Intn(0x10000))
}
