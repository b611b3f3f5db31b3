package templates

import (
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Kind identifies how a stored template is spawned
type Kind string

const (
	KindTXML Kind = "txml"
	KindDir  Kind = "dir"
	KindGit  Kind = "git"
)

const (
	recordExt = ".toml"
	txmlExt   = ".txml"
	dirExt    = ".dir"
)

// Record is the registry entry persisted as <name>.toml. Source is the
// artifact's name inside the registry directory, or the URL of a git
// template.
type Record struct {
	Kind   Kind      `toml:"kind"`
	Source string    `toml:"source"`
	Origin string    `toml:"origin,omitempty"`
	Added  time.Time `toml:"added"`
}

// Valid reports whether k is a known template kind
func (k Kind) Valid() bool {
	switch k {
	case KindTXML, KindDir, KindGit:
		return true
	}
	return false
}

func encodeRecord(rec *Record) ([]byte, error) {
	data, err := toml.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode template record")
	}
	return data, nil
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateInvalid, "failed to decode template record")
	}
	if !rec.Kind.Valid() {
		return nil, errors.Newf(errors.ErrTemplateInvalid, "unknown template kind %q", rec.Kind).
			WithDetail("kind", string(rec.Kind))
	}
	if rec.Source == "" {
		return nil, errors.New(errors.ErrTemplateInvalid, "template record has no source")
	}
	return &rec, nil
}
