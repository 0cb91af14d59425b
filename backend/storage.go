package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tresor228/pitch-ia/models"
)

// ErrPitchNotFound est retourné pour un identifiant inconnu.
var ErrPitchNotFound = errors.New("pitch non trouvé")

// Store garde les pitchs générés en mémoire et les recopie dans un fichier
// JSON à chaque modification.
type Store struct {
	mu      sync.RWMutex
	path    string
	pitches map[string]models.Pitch
	now     func() time.Time
}

// OpenStore charge path, ou le crée vide s'il n'existe pas.
func OpenStore(path string) (*Store, error) {
	s := &Store{
		path:    path,
		pitches: make(map[string]models.Pitch),
		now:     time.Now,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			return nil, fmt.Errorf("create storage file: %w", err)
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, &s.pitches); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}
	return s, nil
}

// Save attribue un ID et une date si besoin, puis persiste.
func (s *Store) Save(p models.Pitch) (models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}

	s.pitches[p.ID] = p
	if err := s.saveToFile(); err != nil {
		delete(s.pitches, p.ID)
		return models.Pitch{}, err
	}
	return p, nil
}

func (s *Store) Get(id string) (models.Pitch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pitches[id]
	return p, ok
}

// List retourne les pitchs du plus récent au plus ancien.
func (s *Store) List() []models.Pitch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Pitch, 0, len(s.pitches))
	for _, p := range s.pitches {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pitches[id]
	if !ok {
		return ErrPitchNotFound
	}
	delete(s.pitches, id)
	if err := s.saveToFile(); err != nil {
		s.pitches[id] = p
		return err
	}
	return nil
}

// saveToFile écrit dans un fichier temporaire puis renomme. Appelant
// détient mu.
func (s *Store) saveToFile() error {
	data, err := json.MarshalIndent(s.pitches, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
