package shelf

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/shelflog/internal/book"
)

// Encode serializes a collection for the durable slot.
// A nil collection encodes as an empty array.
func Encode(books []book.Book) ([]byte, error) {
	if books == nil {
		books = []book.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("encode books: %w", err)
	}
	return data, nil
}

// Decode parses a slot payload. JSON null decodes to an empty collection;
// unknown fields are ignored.
func Decode(data []byte) ([]book.Book, error) {
	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}
