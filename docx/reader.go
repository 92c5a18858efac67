package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/siddhant230/draftclaim"
	"golang.org/x/sync/errgroup"
)

// Ensure Reader implements draftclaim.DocumentReader.
var _ draftclaim.DocumentReader = (*Reader)(nil)

// Reader loads .docx documents from disk.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadDocument loads and parses the document at path. Body text covers
// top-level paragraphs followed by table cells. Comments come from the
// optional comments part; a document without one yields no comments and
// no error. Returns EINVALID if the file is missing, is not a .docx
// package, or extracts no text for a role that requires it.
func (r *Reader) ReadDocument(ctx context.Context, path string, role draftclaim.DocumentRole) (*draftclaim.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "unknown document role %q", role)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "cannot read document %s", path)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "%s is not a valid .docx file", path)
	}

	docRoot, err := parsePart(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if docRoot == nil {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "%s has no document body", path)
	}

	comments, err := extractComments(zr, extractAnchors(docRoot))
	if err != nil {
		return nil, err
	}

	doc := &draftclaim.Document{
		Role:        role,
		Path:        path,
		Text:        extractText(docRoot),
		Comments:    comments,
		ContentHash: fmt.Sprintf("%x", xxhash.Sum64(data)),
		LoadedAt:    time.Now(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetPaths names the input files for one review. AdditionalInfo may be
// empty.
type SetPaths struct {
	Disclosure     string
	AdditionalInfo string
	Claims         string
}

// ReadSet loads the documents of a review concurrently. Any failed load
// fails the whole set.
func (r *Reader) ReadSet(ctx context.Context, paths SetPaths) (*draftclaim.DocumentSet, error) {
	if paths.Disclosure == "" {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "disclosure path required")
	}
	if paths.Claims == "" {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "claims path required")
	}

	var set draftclaim.DocumentSet
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := r.ReadDocument(ctx, paths.Disclosure, draftclaim.RoleDisclosure)
		if err != nil {
			return err
		}
		set.Disclosure = doc
		return nil
	})
	g.Go(func() error {
		doc, err := r.ReadDocument(ctx, paths.Claims, draftclaim.RoleClaims)
		if err != nil {
			return err
		}
		set.Claims = doc
		return nil
	})
	if paths.AdditionalInfo != "" {
		g.Go(func() error {
			doc, err := r.ReadDocument(ctx, paths.AdditionalInfo, draftclaim.RoleAdditionalInfo)
			if err != nil {
				return err
			}
			set.AdditionalInfo = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &set, nil
}

// parsePart parses one XML part of the package. A missing part returns
// (nil, nil) so callers decide whether absence is an error.
func parsePart(zr *zip.Reader, name string) (*etree.Element, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "cannot parse %s", name)
	}
	root := doc.Root()
	if root == nil {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "%s is empty", name)
	}
	return root, nil
}

// extractText joins the non-blank top-level paragraphs, then the
// non-blank table cells, one line each.
func extractText(root *etree.Element) string {
	body := firstByTag(root, "body")
	if body == nil {
		return ""
	}

	var lines []string
	appendLine := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	for _, child := range body.ChildElements() {
		if child.Tag == "p" {
			appendLine(paragraphText(child))
		}
	}
	for _, child := range body.ChildElements() {
		if child.Tag != "tbl" {
			continue
		}
		for _, tr := range childrenByTag(child, "tr") {
			for _, tc := range childrenByTag(tr, "tc") {
				appendLine(cellText(tc))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range descendantsByTag(p, "t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

func cellText(tc *etree.Element) string {
	var parts []string
	for _, p := range childrenByTag(tc, "p") {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

// extractAnchors walks the document in order collecting the text between
// each commentRangeStart/commentRangeEnd pair, keyed by comment ID.
// Unterminated ranges produce no anchor.
func extractAnchors(root *etree.Element) map[string]string {
	anchors := make(map[string]string)
	active := make(map[string]*strings.Builder)

	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			switch child.Tag {
			case "commentRangeStart":
				if id := attrByKey(child, "id"); id != "" {
					active[id] = &strings.Builder{}
				}
			case "commentRangeEnd":
				if id := attrByKey(child, "id"); id != "" {
					if sb, ok := active[id]; ok {
						anchors[id] = strings.TrimSpace(sb.String())
						delete(active, id)
					}
				}
			case "t":
				for _, sb := range active {
					sb.WriteString(child.Text())
				}
			}
			walk(child)
		}
	}
	walk(root)
	return anchors
}

// extractComments reads the comments part, skipping comments with blank
// text. A document without a comments part yields nil.
func extractComments(zr *zip.Reader, anchors map[string]string) ([]draftclaim.Comment, error) {
	root, err := parsePart(zr, "word/comments.xml")
	if err != nil || root == nil {
		return nil, err
	}

	var comments []draftclaim.Comment
	for _, el := range descendantsByTag(root, "comment") {
		text := commentText(el)
		if text == "" {
			continue
		}
		id := attrByKey(el, "id")
		c := draftclaim.Comment{
			ID:       id,
			Author:   attrByKey(el, "author"),
			Initials: attrByKey(el, "initials"),
			Text:     text,
			Anchor:   anchors[id],
		}
		if raw := attrByKey(el, "date"); raw != "" {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				c.Date = ts
			}
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func commentText(el *etree.Element) string {
	var parts []string
	for _, t := range descendantsByTag(el, "t") {
		if s := t.Text(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
