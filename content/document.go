// Package content implements the read-modify-write persistence protocol for
// the editable page document against a hash-versioned remote store.
package content

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Document is the editable page content: a flat mapping from field key to
// display text.
type Document map[string]string

func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Encode serialises the document in the store's committed form: two-space
// indented JSON with keys in stable order.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	maps.Copy(clone, d)
	return clone
}

func (d Document) Equal(other Document) bool {
	return maps.Equal(d, other)
}
