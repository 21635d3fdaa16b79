package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// FileStore is the guard store of a single command-line user: likes persist
// in a JSON file, views only for the lifetime of the process.
type FileStore struct {
	device  *fileGuard
	session ports.Guard
}

// NewFileStore keeps the like guard in path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		device:  &fileGuard{path: path},
		session: NewMemoryStore(0, 0).Session("cli"),
	}
}

func (s *FileStore) Session(string) ports.Guard { return s.session }
func (s *FileStore) Device(string) ports.Guard  { return s.device }

type fileState struct {
	LikedNews []string `json:"likedNews"`
}

type fileGuard struct {
	mu   sync.Mutex
	path string
}

func (g *fileGuard) load() (fileState, error) {
	var st fileState
	b, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, fmt.Errorf("decode %s: %w", g.path, err)
	}
	return st, nil
}

// save writes through a temp file so a crash never leaves half a file behind.
func (g *fileGuard) save(st fileState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}

func (g *fileGuard) Has(_ context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.load()
	if err != nil {
		return false, err
	}
	return slices.Contains(st.LikedNews, id), nil
}

func (g *fileGuard) Add(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.load()
	if err != nil {
		return err
	}
	if slices.Contains(st.LikedNews, id) {
		return nil
	}
	st.LikedNews = append(st.LikedNews, id)
	return g.save(st)
}

func (g *fileGuard) Remove(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.load()
	if err != nil {
		return err
	}
	st.LikedNews = slices.DeleteFunc(st.LikedNews, func(v string) bool { return v == id })
	return g.save(st)
}
