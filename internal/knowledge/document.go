package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document holds the institutional facts the bot is allowed to answer
// from. It is loaded once at startup and immutable for the process
// lifetime.
type Document struct {
	Institution    string    `json:"institution"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Website        string    `json:"website"`
	Address        string    `json:"address"`
	Programs       []Program `json:"programs"`
	AdmissionSteps []string  `json:"admission_steps"`
	Costs          []Cost    `json:"costs"`
}

type Program struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Modality string `json:"modality"`
}

type Cost struct {
	Concept string `json:"concept"`
	Amount  string `json:"amount"`
}

// candidatePaths are probed in order when no explicit path is configured.
var candidatePaths = []string{
	"knowledge.json",
	"data/knowledge.json",
	"/app/data/knowledge.json",
}

// DefaultDocument returns the built-in minimal document used when no
// knowledge file can be loaded. Startup never aborts on a missing or
// broken file.
func DefaultDocument() Document {
	return Document{
		Institution: "Instituto de Educación Superior",
		Phone:       "+52 555 000 0000",
		Email:       "admisiones@instituto.edu",
	}
}

// Load reads the knowledge document from the explicit path when given,
// otherwise from the first readable candidate path. The second return
// reports whether a file was actually loaded; on any failure the
// built-in default document is returned instead.
func Load(explicitPath string) (Document, bool) {
	paths := candidatePaths
	if explicitPath != "" {
		paths = append([]string{explicitPath}, candidatePaths...)
	}
	for _, p := range paths {
		doc, err := readDocument(p)
		if err != nil {
			continue
		}
		return doc, true
	}
	return DefaultDocument(), false
}

func readDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read knowledge file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse knowledge file %s: %w", path, err)
	}
	if doc.Institution == "" {
		doc.Institution = DefaultDocument().Institution
	}
	return doc, nil
}
