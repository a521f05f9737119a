package export

import (
	"fmt"
	"io"

	"github.com/iksnae/chat-session/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// FilterFavorites returns a copy of the session holding only favorited messages
func FilterFavorites(session *internal.Session) *internal.Session {
	filtered := *session
	filtered.Messages = session.Favorites()
	filtered.Metadata.MessageCount = len(filtered.Messages)
	return &filtered
}

// Filename returns the file name a session is exported to
func Filename(session *internal.Session, exporter Exporter) string {
	return fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension())
}

// document is the JSON/YAML export shape: the session plus the IDs of its
// favorited messages, so favorites survive tools that drop unknown message fields.
type document struct {
	internal.Session `yaml:",inline"`
	FavoriteIDs      []string `json:"favorite_ids,omitempty" yaml:"favorite_ids,omitempty"`
}

func newDocument(session *internal.Session) document {
	doc := document{Session: *session}
	doc.Metadata.MessageCount = len(session.Messages)
	for _, msg := range session.Favorites() {
		doc.FavoriteIDs = append(doc.FavoriteIDs, msg.ID)
	}
	return doc
}
