package sitecode

import (
	"errors"
	"time"
)

var (
	ErrCodeNotFound    = errors.New("website code not found")
	ErrVersionNotFound = errors.New("code version not found")
)

// NamedFile is one generated framework file.
type NamedFile struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// FrameworkFiles groups the generated Next.js file triples. The slices are
// always non-nil: empty means "none generated", never undefined.
type FrameworkFiles struct {
	Pages      []NamedFile `json:"pages"`
	Components []NamedFile `json:"components"`
	Styles     []NamedFile `json:"styles"`
}

func (f *FrameworkFiles) Normalize() {
	if f.Pages == nil {
		f.Pages = []NamedFile{}
	}
	if f.Components == nil {
		f.Components = []NamedFile{}
	}
	if f.Styles == nil {
		f.Styles = []NamedFile{}
	}
}

func (f FrameworkFiles) HasContent() bool {
	return len(f.Pages) > 0 || len(f.Components) > 0 || len(f.Styles) > 0
}

// Artifact is the generated source text derived from one design. One
// "current" artifact exists per design; every upsert also lands in the
// version history.
type Artifact struct {
	ID         string         `json:"id"`
	DesignID   string         `json:"design_id"`
	HTML       string         `json:"html"`
	CSS        string         `json:"css"`
	JavaScript string         `json:"javascript"`
	Framework  FrameworkFiles `json:"framework"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (a *Artifact) Normalize() {
	a.Framework.Normalize()
}

// VersionInfo is one entry of a design's code history, newest first.
type VersionInfo struct {
	ID                  string    `json:"id"`
	CreatedAt           time.Time `json:"created_at"`
	HasFrameworkContent bool      `json:"has_framework_content"`
}
