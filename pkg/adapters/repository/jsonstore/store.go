// Package jsonstore serves the static content datasets from JSON files,
// either the copies embedded in the binary or a directory on disk.
package jsonstore

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

//go:embed data/*.json
var embedded embed.FS

const (
	newsFile         = "news.json"
	documentsFile    = "documents.json"
	participantsFile = "participants.json"
)

// Store holds the datasets in memory. It is read-only after Load.
type Store struct {
	news         []domain.ContentRecord
	documents    domain.DocumentDataset
	participants domain.ParticipantDataset
}

// Open loads the datasets from dir, or the embedded defaults when dir is empty.
func Open(dir string) (*Store, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, err
		}
		return Load(sub)
	}
	return Load(os.DirFS(dir))
}

// Load reads the three datasets from fsys and checks their invariants.
func Load(fsys fs.FS) (*Store, error) {
	var (
		news domain.NewsDataset
		s    Store
	)
	if err := readJSON(fsys, newsFile, &news); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, documentsFile, &s.documents); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, participantsFile, &s.participants); err != nil {
		return nil, err
	}
	s.news = news.News

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) validate() error {
	if err := uniqueIDs(newsFile, s.news, func(r domain.ContentRecord) string { return r.ID }); err != nil {
		return err
	}
	for _, r := range s.news {
		if r.Date.IsZero() {
			return fmt.Errorf("%w: %s: record %q has no date", domain.ErrInvalidRecord, newsFile, r.ID)
		}
	}
	if err := uniqueIDs(documentsFile, s.documents.Documents, func(d domain.Document) string { return d.ID }); err != nil {
		return err
	}
	for _, d := range s.documents.Documents {
		if d.Date.IsZero() {
			return fmt.Errorf("%w: %s: document %q has no date", domain.ErrInvalidRecord, documentsFile, d.ID)
		}
	}
	if err := uniqueIDs(participantsFile, s.participants.Leadership, func(l domain.Leader) string { return l.ID }); err != nil {
		return err
	}
	return uniqueIDs(participantsFile, s.participants.Companies, func(c domain.Company) string { return c.ID })
}

func uniqueIDs[T any](file string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := id(item)
		if key == "" {
			return fmt.Errorf("%w: %s: empty id", domain.ErrInvalidRecord, file)
		}
		if seen[key] {
			return fmt.Errorf("%w: %s: duplicate id %q", domain.ErrInvalidRecord, file, key)
		}
		seen[key] = true
	}
	return nil
}

func (s *Store) News() []domain.ContentRecord            { return s.news }
func (s *Store) Documents() domain.DocumentDataset       { return s.documents }
func (s *Store) Participants() domain.ParticipantDataset { return s.participants }

var _ ports.ContentStore = (*Store)(nil)
