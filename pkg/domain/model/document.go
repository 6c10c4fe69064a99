package model

import "github.com/google/uuid"

// Document is an opaque text blob stored in the knowledge base.
// Immutable once stored; identifiers are unique within a collection.
type Document struct {
	ID      string
	Content string
}

// NewDocumentID generates a new UUID v4 document identifier for documents
// added directly rather than derived from an external dataset.
func NewDocumentID() string {
	return uuid.New().String()
}

// ScoredDocument is a Document paired with the similarity score assigned
// by the vector store for a particular query.
type ScoredDocument struct {
	Document *Document
	Score    float32
}
