package warehouse

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
)

// Snapshot estado durable del workspace. Los contenidos WIP adjuntados a componentes
// no se persisten.
type Snapshot struct {
	Layouts        []model.Layout      `json:"layouts"`
	Current        *model.LayoutDetail `json:"current,omitempty"`
	Counts         map[string]int      `json:"counts"`
	CassetteCounts map[string]int      `json:"cassetteCounts"`
}

// SnapshotStore almacén durable del snapshot.
type SnapshotStore interface {
	Load() (Snapshot, bool, error)
	Save(Snapshot) error
}

// FileSnapshotStore snapshot en MessagePack, reutilizando las etiquetas json de los modelos.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load() (Snapshot, bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot: leer %s: %w", s.path, err)
	}
	snap, err := decodeSnapshot(raw)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot: decodificar %s: %w", s.path, err)
	}
	return snap, true, nil
}

func (s *FileSnapshotStore) Save(snap Snapshot) error {
	raw, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("snapshot: codificar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("snapshot: crear directorio: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("snapshot: escribir %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("snapshot: reemplazar %s: %w", s.path, err)
	}
	return nil
}

func encodeSnapshot(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSnapshot(raw []byte) (Snapshot, error) {
	var snap Snapshot
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&snap)
	return snap, err
}

// MemorySnapshotStore sustituto en memoria; guarda la forma codificada para que los tests
// vean exactamente lo que llegaría a disco.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	raw   []byte
	saves int
}

func NewMemorySnapshotStore() *MemorySnapshotStore { return &MemorySnapshotStore{} }

func (s *MemorySnapshotStore) Load() (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return Snapshot{}, false, nil
	}
	snap, err := decodeSnapshot(s.raw)
	return snap, err == nil, err
}

func (s *MemorySnapshotStore) Save(snap Snapshot) error {
	raw, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.saves++
	return nil
}

// Saves cuántas veces se escribió el snapshot.
func (s *MemorySnapshotStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
