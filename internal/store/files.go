package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/antoine/hireme/internal/types"
)

const (
	rawDirName       = "raw"
	processedDirName = "processed"
)

// ProcessedOffer is the on-disk record for an extracted posting.
type ProcessedOffer struct {
	URL     string           `json:"url"`
	Source  string           `json:"source,omitempty"`
	Details types.JobDetails `json:"data"`
}

// FileStore manages the job-offers directory: raw posting text under raw/
// and extracted JobDetails under processed/.
type FileStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileStore creates the directory layout under baseDir if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	for _, sub := range []string{rawDirName, processedDirName} {
		dir := filepath.Join(baseDir, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StoreError{
				Message: "failed to create offers directory",
				Path:    dir,
				Cause:   err,
			}
		}
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the root of the offers directory.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Key derives a stable file key from a posting's title and company and
// reserves it. If the key is already taken by another posting, a short
// unique suffix is added. Reservation claims the raw file up front so
// parallel workers never receive the same key twice.
func (s *FileStore) Key(title, company string) string {
	base := slugify(title + "-" + company)
	if base == "" {
		base = "offer"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := base
	for !s.reserve(key) {
		key = base + "-" + uuid.NewString()[:8]
	}
	return key
}

// reserve claims the raw file for a key with O_EXCL. False means the key is
// taken.
func (s *FileStore) reserve(key string) bool {
	if _, err := os.Stat(s.processedPath(key)); err == nil {
		return false
	}
	f, err := os.OpenFile(s.rawPath(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// SaveRaw writes the raw posting text for a key.
func (s *FileStore) SaveRaw(key, rawText string) (string, error) {
	path := s.rawPath(key)
	if err := os.WriteFile(path, []byte(rawText), 0o644); err != nil {
		return "", &StoreError{
			Message: "failed to write raw posting",
			Path:    path,
			Cause:   err,
		}
	}
	return path, nil
}

// SaveProcessed writes the extracted JobDetails for a key.
func (s *FileStore) SaveProcessed(key string, offer *ProcessedOffer) (string, error) {
	data, err := json.MarshalIndent(offer, "", "  ")
	if err != nil {
		return "", &StoreError{
			Message: "failed to marshal processed offer",
			Cause:   err,
		}
	}

	path := s.processedPath(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &StoreError{
			Message: "failed to write processed offer",
			Path:    path,
			Cause:   err,
		}
	}
	return path, nil
}

// LoadProcessed reads a processed offer back by key.
func (s *FileStore) LoadProcessed(key string) (*ProcessedOffer, error) {
	path := s.processedPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, &StoreError{
			Message: "failed to read processed offer",
			Path:    path,
			Cause:   err,
		}
	}

	var offer ProcessedOffer
	if err := json.Unmarshal(data, &offer); err != nil {
		return nil, &StoreError{
			Message: "failed to parse processed offer",
			Path:    path,
			Cause:   err,
		}
	}
	return &offer, nil
}

// ListProcessed returns the keys of all processed offers, sorted.
func (s *FileStore) ListProcessed() ([]string, error) {
	dir := filepath.Join(s.baseDir, processedDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &StoreError{
			Message: "failed to list processed offers",
			Path:    dir,
			Cause:   err,
		}
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) rawPath(key string) string {
	return filepath.Join(s.baseDir, rawDirName, key+".txt")
}

func (s *FileStore) processedPath(key string) string {
	return filepath.Join(s.baseDir, processedDirName, key+".json")
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
