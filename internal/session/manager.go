// Package session keeps per-room conversation memories stored as JSONL files.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…","metadata":{…}}
//	Line 2+: one JSON schema.Memory per line
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// Manager loads and persists sessions as JSONL files.
type Manager struct {
	sessionsDir string   // workspace/sessions/
	cache       sync.Map // key → *Session
}

// NewManager creates a Manager rooted at the workspace directory.
// It creates the sessions subdirectory if necessary.
func NewManager(workspace string) (*Manager, error) {
	dir := filepath.Join(workspace, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}

	return &Manager{sessionsDir: dir}, nil
}

// GetOrCreate returns the cached session for key, loading from disk if needed,
// or creating an empty new one.
func (m *Manager) GetOrCreate(key string) *Session {
	if v, ok := m.cache.Load(key); ok {
		return v.(*Session)
	}

	s := m.load(key)
	if s == nil {
		s = newSession(key)
	}

	actual, _ := m.cache.LoadOrStore(key, s)
	return actual.(*Session)
}

type metadataLine struct {
	Type      string         `json:"_type"`
	Key       string         `json:"key"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Metadata  map[string]any `json:"metadata"`
}

// Save writes the session to disk and updates the cache.
func (m *Manager) Save(s *Session) error {
	path := m.sessionPath(s.Key)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	s.mu.Lock()
	mems := slices.Clone(s.memories)
	meta := metadataLine{
		Type:      "metadata",
		Key:       s.Key,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
		Metadata:  s.Metadata,
	}
	s.mu.Unlock()

	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	for _, mem := range mems {
		if err := enc.Encode(mem); err != nil {
			return fmt.Errorf("encode memory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}

	m.cache.Store(s.Key, s)
	return nil
}

// Info describes a stored session.
type Info struct {
	Key       string
	UpdatedAt string
	Path      string
}

// ListSessions returns all stored sessions, newest first.
func (m *Manager) ListSessions() []Info {
	entries, _ := filepath.Glob(filepath.Join(m.sessionsDir, "*.jsonl"))
	var out []Info

	for _, path := range entries {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			var meta metadataLine
			if json.Unmarshal(scanner.Bytes(), &meta) == nil && meta.Type == "metadata" {
				key := meta.Key
				if key == "" {
					key = strings.TrimSuffix(filepath.Base(path), ".jsonl")
				}
				out = append(out, Info{Key: key, UpdatedAt: meta.UpdatedAt, Path: path})
			}
		}
		f.Close()
	}

	// RFC 3339 UTC timestamps sort lexicographically.
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(b.UpdatedAt, a.UpdatedAt) })
	return out
}

// sessionPath converts a session key to its JSONL file path.
func (m *Manager) sessionPath(key string) string {
	return filepath.Join(m.sessionsDir, safeFilename(key)+".jsonl")
}

// safeFilename replaces filesystem-unsafe characters with underscores.
func safeFilename(name string) string {
	const unsafe = `<>:"/\|?*`
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(unsafe, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// load reads a session from disk. It returns nil when no file exists.
func (m *Manager) load(key string) *Session {
	f, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer f.Close()

	s := newSession(key)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1<<20), 1<<20) // 1 MB per line
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if bytes.Contains(line, []byte(`"_type":"metadata"`)) {
			var meta metadataLine
			if err := json.Unmarshal(line, &meta); err == nil {
				if meta.Metadata != nil {
					s.Metadata = meta.Metadata
				}
				if t, err := time.Parse(time.RFC3339, meta.CreatedAt); err == nil {
					s.CreatedAt = t
				}
			}
			continue
		}

		var mem schema.Memory
		if err := json.Unmarshal(line, &mem); err != nil {
			slog.Warn("skipping malformed session line", "key", key, "err", err)
			continue
		}
		s.memories = append(s.memories, mem)
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("error reading session file", "key", key, "err", err)
		return nil
	}
	return s
}
