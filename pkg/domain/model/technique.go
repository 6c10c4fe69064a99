package model

import "fmt"

// Technique is a normalized entry from the MITRE ATT&CK dataset.
// Revoked and deprecated entries are excluded at ingestion time.
type Technique struct {
	ID          string // External standard ID, e.g. T1059
	Name        string
	Description string
}

// ToDocument maps a technique to exactly one Document. The external
// identifier is reused verbatim, so uniqueness is only as good as the
// source dataset.
func (t *Technique) ToDocument() *Document {
	return &Document{
		ID:      t.ID,
		Content: fmt.Sprintf("%s (%s)\n%s", t.Name, t.ID, t.Description),
	}
}
