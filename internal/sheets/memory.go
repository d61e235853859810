package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
// It follows the same contract as PostgresStore, including (nil, nil) for
// a missing sheet.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string]*memSheet
}

type memSheet struct {
	headers []string
	rows    [][]interface{}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*memSheet)}
}

func (s *MemoryStore) Read(_ context.Context, name string) (*Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, ok := s.sheets[name]
	if !ok {
		return nil, nil
	}

	sheet := &Sheet{
		Name:    name,
		Headers: append([]string(nil), ms.headers...),
		Rows:    make([][]interface{}, len(ms.rows)),
	}
	for i, row := range ms.rows {
		sheet.Rows[i] = append([]interface{}(nil), row...)
	}
	return sheet, nil
}

func (s *MemoryStore) CreateSheet(_ context.Context, name string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sheets[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	s.sheets[name] = &memSheet{headers: append([]string(nil), headers...)}
	return nil
}

func (s *MemoryStore) AppendRow(_ context.Context, name string, row []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, ok := s.sheets[name]
	if !ok {
		return fmt.Errorf("sheet %q does not exist", name)
	}
	ms.rows = append(ms.rows, append([]interface{}(nil), row...))
	return nil
}

func (s *MemoryStore) UpdateCell(_ context.Context, name string, row, col int, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, err := s.dataRow(name, row)
	if err != nil {
		return err
	}
	for len(ms.rows[row]) <= col {
		ms.rows[row] = append(ms.rows[row], nil)
	}
	ms.rows[row][col] = value
	return nil
}

func (s *MemoryStore) DeleteRow(_ context.Context, name string, row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, err := s.dataRow(name, row)
	if err != nil {
		return err
	}
	ms.rows = append(ms.rows[:row], ms.rows[row+1:]...)
	return nil
}

func (s *MemoryStore) dataRow(name string, row int) (*memSheet, error) {
	ms, ok := s.sheets[name]
	if !ok {
		return nil, fmt.Errorf("sheet %q does not exist", name)
	}
	if row < 0 || row >= len(ms.rows) {
		return nil, fmt.Errorf("row index %d out of range in sheet %q", row, name)
	}
	return ms, nil
}
