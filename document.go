package draftclaim

import (
	"context"
	"time"
)

// DocumentRole identifies the function of an input document in a review.
type DocumentRole string

// Document roles.
const (
	RoleDisclosure     DocumentRole = "disclosure"
	RoleAdditionalInfo DocumentRole = "additional_info"
	RoleClaims         DocumentRole = "claims"
)

// Valid reports whether the role is one of the known roles.
func (r DocumentRole) Valid() bool {
	switch r {
	case RoleDisclosure, RoleAdditionalInfo, RoleClaims:
		return true
	}
	return false
}

// Document represents an input document loaded from disk. Text holds the
// full extracted body text; Comments holds the review comments embedded
// in the file, in document order.
type Document struct {
	Role        DocumentRole `json:"role"`
	Path        string       `json:"path"`
	Text        string       `json:"text"`
	Comments    []Comment    `json:"comments,omitempty"`
	ContentHash string       `json:"contentHash"`
	LoadedAt    time.Time    `json:"loadedAt"`
}

// Validate returns an error if the document has an unknown role or no
// usable content. Supplementary documents may be empty; disclosure and
// claims documents must carry text.
func (d *Document) Validate() error {
	if !d.Role.Valid() {
		return Errorf(EINVALID, "unknown document role %q", d.Role)
	}
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	if d.Role != RoleAdditionalInfo && d.Text == "" {
		return Errorf(EINVALID, "no text could be extracted from %s", d.Path)
	}
	return nil
}

// Comment is a single review comment embedded in a document. Anchor holds
// the commented-on passage when the file records one.
type Comment struct {
	ID       string    `json:"id"`
	Author   string    `json:"author,omitempty"`
	Initials string    `json:"initials,omitempty"`
	Date     time.Time `json:"date"`
	Text     string    `json:"text"`
	Anchor   string    `json:"anchor,omitempty"`
}

// DocumentSet groups the input documents for one review. AdditionalInfo
// is optional and may be nil.
type DocumentSet struct {
	Disclosure     *Document `json:"disclosure"`
	AdditionalInfo *Document `json:"additionalInfo,omitempty"`
	Claims         *Document `json:"claims"`
}

// Validate returns an error unless the set carries a valid disclosure and
// a valid claims document.
func (s *DocumentSet) Validate() error {
	if s.Disclosure == nil {
		return Errorf(EINVALID, "invention disclosure document required")
	}
	if s.Claims == nil {
		return Errorf(EINVALID, "patent claims document required")
	}
	if err := s.Disclosure.Validate(); err != nil {
		return err
	}
	if s.AdditionalInfo != nil {
		if err := s.AdditionalInfo.Validate(); err != nil {
			return err
		}
	}
	return s.Claims.Validate()
}

// AdditionalText returns the supplementary document text, or the empty
// string when the set has none.
func (s *DocumentSet) AdditionalText() string {
	if s.AdditionalInfo == nil {
		return ""
	}
	return s.AdditionalInfo.Text
}

// Questions derives the verification questions from the comments embedded
// in the claims document. An empty result is valid; it means there is
// nothing to verify.
func (s *DocumentSet) Questions() []Question {
	if s.Claims == nil {
		return nil
	}
	return QuestionsFromComments(s.Claims.Comments)
}

// DocumentReader parses input documents from disk.
type DocumentReader interface {
	// ReadDocument loads and parses the document at path. A claims
	// document without comments is a valid result. Returns EINVALID if
	// the file is missing or cannot be parsed.
	ReadDocument(ctx context.Context, path string, role DocumentRole) (*Document, error)
}
