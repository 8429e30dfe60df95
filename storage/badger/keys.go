package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/rampart/core"
)

// Key prefixes for different data types
const (
	eventPrefix     = "secevt"
	eventTimePrefix = "secevtt"
	eventCallPrefix = "secevtc"
	eventIDSeq      = "secevtseq"
)

// makeEventKey generates a key for a security event by ID.
func makeEventKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", eventPrefix, id))
}

// makeEventTimeKey generates a composite key for the time index.
// Format: prefix:timestamp:id
func makeEventTimeKey(timestamp time.Time, id core.ID) []byte {
	prefix := eventTimePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// BigEndian so lexicographic sort matches chronological order
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEventTimeKey generates a partial key for time range queries.
// Format: prefix:timestamp
func makePartialEventTimeKey(timestamp time.Time) []byte {
	prefix := eventTimePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeEventCallKey generates a composite key for the call index.
// Format: prefix:callId:timestamp:id
func makeEventCallKey(callId string, timestamp time.Time, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", eventCallPrefix, callId)
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEventCallKey generates a partial key for call queries.
// Format: prefix:callId:
func makePartialEventCallKey(callId string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", eventCallPrefix, callId))
}
