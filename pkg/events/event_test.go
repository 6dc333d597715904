package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentIndexed(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := NewDocumentIndexed("alice", "q3.pdf", "gen-1", 12, at)

	var e Event = evt
	assert.Equal(t, TypeDocumentIndexed, e.EventType())
	assert.Equal(t, at, e.Timestamp())
	assert.Equal(t, "q3.pdf", e.Payload()["source"])
	assert.Equal(t, 12, e.Payload()["chunks"])
}
