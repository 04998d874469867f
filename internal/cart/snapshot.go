package cart

import (
	"encoding/json"
	"fmt"
)

// The handoff slot is a narrow message-passing channel between the browsing
// view (writer) and the checkout view (reader). Its schema is versioned; the
// legacy format was a bare line array with no envelope.
const snapshotVersion = 1

type snapshotEnvelope struct {
	Version int    `json:"version"`
	Lines   []Line `json:"lines"`
}

// EncodeSnapshot serializes a line set for the handoff slot.
func EncodeSnapshot(lines []Line) ([]byte, error) {
	data, err := json.Marshal(snapshotEnvelope{Version: snapshotVersion, Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("marshal checkout snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot reads a handoff slot value, accepting both the current
// envelope and the legacy bare array.
func DecodeSnapshot(data []byte) ([]Line, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version >= 1 {
		return env.Lines, nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal checkout snapshot: %w", err)
	}
	return lines, nil
}
