package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/heartmarshall/vocab/internal/domain"
)

// JSON writes records as indented JSON objects, one per record.
type JSON struct {
	enc *json.Encoder
}

// NewJSON creates a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

// Render writes one record.
func (j *JSON) Render(rec *domain.WordRecord) error {
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("render: encode %q: %w", rec.Word, err)
	}
	return nil
}
