package shelf

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/shelflog/internal/book"
	"github.com/roach88/shelflog/internal/kv"
	"github.com/roach88/shelflog/internal/view"
)

// DefaultKey is the durable slot that holds the collection.
const DefaultKey = "books"

// Store holds the book collection and the search/sort selection.
//
// Thread-safety: a Store must be driven from a single goroutine. Persist
// writes run on their own goroutines but only see an encoded snapshot, and
// each waits for the one before it.
type Store struct {
	storage   kv.Storage
	key       string
	logger    *slog.Logger
	projector *view.Projector

	books       []book.Book
	searchQuery string
	sortOption  book.SortOption

	inflight sync.WaitGroup
	last     *Pending // most recent persist; the next write waits on it
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the durable slot key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithProjector sets the projector used by Visible.
func WithProjector(p *view.Projector) Option {
	return func(s *Store) { s.projector = p }
}

// New creates an empty Store persisting to storage. Call Load to hydrate
// it from the durable slot.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage:    storage,
		key:        DefaultKey,
		books:      []book.Book{},
		sortOption: book.DefaultSort,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.projector == nil {
		s.projector = view.New(view.DefaultLocale)
	}
	return s
}

// Key returns the durable slot key.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the collection with the one in the durable slot.
//
// An absent or empty slot leaves the collection as it is. A read or decode
// failure is logged and returned as *LoadError; the collection is left
// unchanged. Loading twice from an unchanged slot has no further effect.
func (s *Store) Load(ctx context.Context) error {
	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("error loading books", "key", s.key, "error", err)
		return &LoadError{Kind: LoadErrStorage, Key: s.key, Err: err}
	}
	if !ok || value == "" {
		s.logger.Debug("no stored books", "key", s.key)
		return nil
	}

	books, err := Decode([]byte(value))
	if err != nil {
		s.logger.Error("error loading books", "key", s.key, "error", err)
		return &LoadError{Kind: LoadErrDecode, Key: s.key, Err: err}
	}

	s.books = books
	s.logger.Debug("books loaded", "key", s.key, "count", len(books))
	return nil
}

// Add appends b and persists. b is stored as given: id uniqueness and
// field validation are the caller's job. A duplicate id is logged.
func (s *Store) Add(ctx context.Context, b book.Book) *Pending {
	if s.indexOf(b.ID) >= 0 {
		s.logger.Warn("adding book with duplicate id", "id", b.ID)
	}
	s.books = append(s.books, b)
	return s.persist(ctx, "add")
}

// Update replaces, in place, the record whose id is b.ID, then persists.
// An unknown id leaves the collection unchanged.
func (s *Store) Update(ctx context.Context, b book.Book) *Pending {
	found := false
	for i := range s.books {
		if s.books[i].ID == b.ID {
			s.books[i] = b
			found = true
		}
	}
	if !found {
		s.logger.Debug("update of unknown book ignored", "id", b.ID)
	}
	return s.persist(ctx, "update")
}

// Delete removes the record with the given id, keeping the order of the
// rest, then persists. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) *Pending {
	before := len(s.books)
	s.books = slices.DeleteFunc(s.books, func(b book.Book) bool {
		return b.ID == id
	})
	if len(s.books) == before {
		s.logger.Debug("delete of unknown book ignored", "id", id)
	}
	return s.persist(ctx, "delete")
}

// Clear removes every book and persists the empty collection.
func (s *Store) Clear(ctx context.Context) *Pending {
	s.books = []book.Book{}
	return s.persist(ctx, "clear")
}

// ReplaceAll replaces the collection with a copy of books and persists.
func (s *Store) ReplaceAll(ctx context.Context, books []book.Book) *Pending {
	s.books = append([]book.Book{}, books...)
	return s.persist(ctx, "replace")
}

// SetSearchQuery changes the search text. Never persisted.
func (s *Store) SetSearchQuery(query string) {
	s.searchQuery = query
}

// SetSortOption changes the sort key. Never persisted.
func (s *Store) SetSortOption(key book.SortOption) {
	s.sortOption = key
}

// SearchQuery returns the current search text.
func (s *Store) SearchQuery() string {
	return s.searchQuery
}

// SortOption returns the current sort key.
func (s *Store) SortOption() book.SortOption {
	return s.sortOption
}

// Books returns a copy of the collection in insertion order.
func (s *Store) Books() []book.Book {
	return slices.Clone(s.books)
}

// Len returns the number of books in the collection.
func (s *Store) Len() int {
	return len(s.books)
}

// Find returns the first book with the given id.
func (s *Store) Find(id string) (book.Book, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.books[i], true
	}
	return book.Book{}, false
}

// Visible returns the collection filtered by the search text and sorted by
// the sort key. It is recomputed on every call.
func (s *Store) Visible() []book.Book {
	return s.projector.Project(s.books, s.searchQuery, s.sortOption)
}

// Wait blocks until every in-flight persist has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.books, func(b book.Book) bool {
		return b.ID == id
	})
}

// persist encodes the current collection now and writes it to the slot in
// the background. Writes are applied in mutation order and ignore
// cancellation of ctx.
func (s *Store) persist(ctx context.Context, op string) *Pending {
	count := len(s.books)

	data, err := Encode(s.books)
	if err != nil {
		s.logger.Error("error saving books", "key", s.key, "op", op, "error", err)
		return resolved(&PersistError{Key: s.key, Op: op, Count: count, Err: err})
	}

	p := newPending()
	prev := s.last
	s.last = p
	ctx = context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if prev != nil {
			<-prev.Done()
		}

		if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
			s.logger.Error("error saving books", "key", s.key, "op", op, "error", err)
			p.resolve(&PersistError{Key: s.key, Op: op, Count: count, Err: err})
			return
		}
		s.logger.Debug("books saved", "key", s.key, "op", op, "count", count)
		p.resolve(nil)
	}()

	return p
}
