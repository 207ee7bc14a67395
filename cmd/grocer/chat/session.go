// This file persists chat transcripts under <data-dir>/sessions.
package chat

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Transcript is the on-disk shape of one chat session.
type Transcript struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

func sessionsDir(dataDir string) string {
	return filepath.Join(dataDir, "sessions")
}

// saveTranscript writes the current transcript. Failures are logged and
// swallowed: losing a transcript must never break the chat.
func (m Model) saveTranscript() {
	dir := sessionsDir(m.dataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create sessions dir", zap.Error(err))
		return
	}

	data, err := json.MarshalIndent(Transcript{SessionID: m.sessionID, Messages: m.history}, "", "  ")
	if err != nil {
		m.log.Warn("cannot encode transcript", zap.Error(err))
		return
	}
	path := filepath.Join(dir, m.sessionID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.log.Warn("cannot write transcript", zap.String("path", path), zap.Error(err))
	}
}

// ListTranscripts returns saved session ids, newest file first.
func ListTranscripts(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(sessionsDir(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	type stamped struct {
		id  string
		mod int64
	}
	var sessions []stamped
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, stamped{
			id:  strings.TrimSuffix(entry.Name(), ".json"),
			mod: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].mod > sessions[j].mod })

	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.id
	}
	return ids, nil
}
