package kv

import (
	"context"
	"sync"
)

// Memory is a process-local Storage. Besides backing the "memory" backend
// it lets tests inject read and write failures.
type Memory struct {
	mu       sync.Mutex
	data     map[string]string
	readErr  error
	writeErr error
	writes   int
	closed   bool
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Storage.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Close implements Storage. Data stays readable through Peek.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FailReads makes every Get return err. Pass nil to restore reads.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every Set return err. Pass nil to restore writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Seed stores value directly, bypassing failure injection.
func (m *Memory) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Peek returns the stored value, bypassing failure injection.
func (m *Memory) Peek(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
