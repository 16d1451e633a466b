package matstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/pkg/mat"
)

// DefaultSize is the number of decoded files kept when no size is given.
const DefaultSize = 64

var ErrFileNotFound = errors.New("matstore: file not found")

// Entry is one decoded file held by the store.
type Entry struct {
	ID    string
	Name  string
	Bytes int64
	Added time.Time
	File  *mat.File
}

type pathKey struct {
	id      string
	modTime time.Time
	size    int64
}

// Store keeps recently decoded files in memory, evicting the least recently
// used once full. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	files   *lru.Cache[string, *Entry]
	paths   map[string]pathKey
	decoder *mat.Decoder
	log     logger.Logger
	now     func() time.Time
}

// New returns a store holding up to size files, decoding with dec.
func New(size int, dec *mat.Decoder, log logger.Logger) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if dec == nil {
		dec = &mat.Decoder{}
	}
	if log == nil {
		log = logger.Discard()
	}
	s := &Store{
		paths:   make(map[string]pathKey),
		decoder: dec,
		log:     log,
		now:     time.Now,
	}
	cache, err := lru.NewWithEvict(size, s.evicted)
	if err != nil {
		return nil, fmt.Errorf("matstore: %w", err)
	}
	s.files = cache
	return s, nil
}

// evicted runs with s.mu held, from inside cache calls.
func (s *Store) evicted(id string, e *Entry) {
	if k, ok := s.paths[e.Name]; ok && k.id == id {
		delete(s.paths, e.Name)
	}
	s.log.Debug("evicted decoded file", "id", id, "name", e.Name)
}

// Put stores an already decoded file under a fresh id.
func (s *Store) Put(name string, f *mat.File, size int64) *Entry {
	e := &Entry{
		ID:    uuid.NewString(),
		Name:  name,
		Bytes: size,
		Added: s.now(),
		File:  f,
	}
	s.mu.Lock()
	s.files.Add(e.ID, e)
	s.mu.Unlock()
	return e
}

// Decode decodes data and stores the result.
func (s *Store) Decode(name string, data []byte) (*Entry, error) {
	f, err := s.decoder.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	e := s.Put(name, f, int64(len(data)))
	s.log.Info("decoded file", "id", e.ID, "name", name, "arrays", f.Len(), "bytes", len(data))
	return e, nil
}

// Load decodes the file at path, reusing the stored entry while the file's
// size and modification time are unchanged.
func (s *Store) Load(path string) (*Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mat.ErrIO, err)
	}

	s.mu.Lock()
	if k, ok := s.paths[abs]; ok && k.modTime.Equal(st.ModTime()) && k.size == st.Size() {
		if e, ok := s.files.Get(k.id); ok {
			s.mu.Unlock()
			return e, nil
		}
	}
	s.mu.Unlock()

	f, err := s.decoder.Open(abs)
	if err != nil {
		return nil, err
	}
	e := s.Put(abs, f, st.Size())

	s.mu.Lock()
	s.paths[abs] = pathKey{id: e.ID, modTime: st.ModTime(), size: st.Size()}
	s.mu.Unlock()

	s.log.Info("loaded file", "id", e.ID, "path", abs, "arrays", f.Len())
	return e, nil
}

// Get returns the entry with id and marks it recently used.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.files.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	return e, nil
}

// Delete drops the entry with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.files.Remove(id) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	return nil
}

// List returns every entry, oldest first.
func (s *Store) List() []*Entry {
	s.mu.Lock()
	out := s.files.Values()
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Added.Before(out[j].Added) })
	return out
}

// Len returns the number of stored files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files.Len()
}
