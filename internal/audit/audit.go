package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Operation names recorded in the trail.
const (
	OpEncrypt     = "encrypt"
	OpDecrypt     = "decrypt"
	OpKeygen      = "keygen"
	OpEnv         = "env"
	OpKubeSecrets = "kube-secrets"
)

// runID identifies every entry written by this process.
var runID = uuid.New().String()

// Entry is a single audit log line. It never carries secret values.
type Entry struct {
	Timestamp string `json:"ts"`
	RunID     string `json:"run_id"`
	Operation string `json:"op"`

	Files     []string `json:"files,omitempty"`
	PublicKey string   `json:"public_key,omitempty"`
	KeyFile   string   `json:"key_file,omitempty"` // For keygen --write.
	Error     string   `json:"error,omitempty"`
}

// RunID returns the identifier shared by all entries of this process.
func RunID() string {
	return runID
}

// NewEntry returns an entry for op stamped with the current run.
func NewEntry(op string) Entry {
	return Entry{Operation: op, RunID: runID}
}

// Log appends entry to the JSON lines file at path, creating the file and
// its directory if needed. An empty path disables logging.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.RunID == "" {
		entry.RunID = runID
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// ReadEntries reads all entries from the log at path. A missing log yields
// no entries.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON lines into entries. Blank and malformed lines,
// such as a partially written last line, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}
