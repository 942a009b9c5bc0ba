package testutil

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// InMemoryBooks is an in-memory implementation of the book storage contract.
type InMemoryBooks struct {
	mu      sync.RWMutex
	books   map[core.BookIDString]core.Book
	LoadErr error
	SaveErr error
}

// NewInMemoryBooks creates an empty in-memory book store.
func NewInMemoryBooks() *InMemoryBooks {
	return &InMemoryBooks{
		books: make(map[core.BookIDString]core.Book),
	}
}

// Load returns the stored book or shell.ErrBookNotFound.
func (s *InMemoryBooks) Load(_ context.Context, bookID core.BookIDString) (core.Book, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok {
		return nil, shell.ErrBookNotFound
	}

	return book, nil
}

// Save stores the book, replacing any previous state of the same copy.
func (s *InMemoryBooks) Save(_ context.Context, book core.Book) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID()] = book

	return nil
}
