package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/siddhant230/draftclaim"
)

// part is one file inside the .docx package.
type part struct {
	name string
	data []byte
}

// Numbering definition IDs referenced by list paragraphs.
const (
	numIDBullet  = 1
	numIDDecimal = 2
)

// run is one styled text fragment inside a paragraph.
type run struct {
	text  string
	bold  bool
	color string // RRGGBB hex, empty for the default
}

// paragraphOptions style one paragraph.
type paragraphOptions struct {
	style    string
	centered bool
	numID    int
}

// builderComment is a review comment registered for the comments part.
type builderComment struct {
	id       int
	author   string
	initials string
	date     time.Time
	text     string
}

// docBuilder assembles a minimal WordprocessingML package: document,
// styles, numbering, relationships, and an optional comments part.
type docBuilder struct {
	doc      *etree.Document
	body     *etree.Element
	comments []builderComment
}

func newDocBuilder() *docBuilder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wordNS)
	root.CreateAttr("xmlns:r", relNS)
	return &docBuilder{doc: doc, body: root.CreateElement("w:body")}
}

func (b *docBuilder) paragraph(opts paragraphOptions, runs ...run) {
	p := b.body.CreateElement("w:p")
	applyParagraphOptions(p, opts)
	for _, r := range runs {
		addRun(p, r)
	}
}

// annotatedParagraph writes a paragraph whose whole text is wrapped in a
// comment range. The returned ID ties the range to a comment registered
// with addComment.
func (b *docBuilder) annotatedParagraph(opts paragraphOptions, text string, commentID int) {
	p := b.body.CreateElement("w:p")
	applyParagraphOptions(p, opts)

	id := strconv.Itoa(commentID)
	p.CreateElement("w:commentRangeStart").CreateAttr("w:id", id)
	addRun(p, run{text: text})
	p.CreateElement("w:commentRangeEnd").CreateAttr("w:id", id)
	ref := p.CreateElement("w:r")
	ref.CreateElement("w:commentReference").CreateAttr("w:id", id)
}

// addComment registers a comment for the comments part and returns its
// ID for use with annotatedParagraph.
func (b *docBuilder) addComment(author, initials string, date time.Time, text string) int {
	id := len(b.comments) + 1
	b.comments = append(b.comments, builderComment{
		id:       id,
		author:   author,
		initials: initials,
		date:     date,
		text:     text,
	})
	return id
}

// table writes a bordered table, one paragraph per cell.
func (b *docBuilder) table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	tbl := b.body.CreateElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		el := borders.CreateElement("w:" + side)
		el.CreateAttr("w:val", "single")
		el.CreateAttr("w:sz", "4")
		el.CreateAttr("w:color", "auto")
	}

	grid := tbl.CreateElement("w:tblGrid")
	for range rows[0] {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", "3000")
	}

	for _, rowData := range rows {
		tr := tbl.CreateElement("w:tr")
		for _, cell := range rowData {
			tc := tr.CreateElement("w:tc")
			p := tc.CreateElement("w:p")
			addRun(p, run{text: cell})
		}
	}
}

func applyParagraphOptions(p *etree.Element, opts paragraphOptions) {
	if opts.style == "" && !opts.centered && opts.numID == 0 {
		return
	}
	pPr := p.CreateElement("w:pPr")
	if opts.style != "" {
		pPr.CreateElement("w:pStyle").CreateAttr("w:val", opts.style)
	}
	if opts.numID != 0 {
		numPr := pPr.CreateElement("w:numPr")
		numPr.CreateElement("w:ilvl").CreateAttr("w:val", "0")
		numPr.CreateElement("w:numId").CreateAttr("w:val", strconv.Itoa(opts.numID))
	}
	if opts.centered {
		pPr.CreateElement("w:jc").CreateAttr("w:val", "center")
	}
}

func addRun(p *etree.Element, r run) {
	rEl := p.CreateElement("w:r")
	if r.bold || r.color != "" {
		rPr := rEl.CreateElement("w:rPr")
		if r.bold {
			rPr.CreateElement("w:b")
		}
		if r.color != "" {
			rPr.CreateElement("w:color").CreateAttr("w:val", r.color)
		}
	}
	t := rEl.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(r.text)
}

// spanRuns converts parsed bold spans into runs.
func spanRuns(spans []draftclaim.Span) []run {
	runs := make([]run, 0, len(spans))
	for _, s := range spans {
		runs = append(runs, run{text: s.Text, bold: s.Bold})
	}
	return runs
}

// bytes serializes the package into .docx zip bytes.
func (b *docBuilder) bytes() ([]byte, error) {
	// the section properties element must close the body
	sectPr := b.body.CreateElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")

	docXML, err := b.doc.WriteToBytes()
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot serialize document part")
	}

	parts := []part{
		{"[Content_Types].xml", b.contentTypes()},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", docXML},
		{"word/_rels/document.xml.rels", b.documentRels()},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
	}
	if len(b.comments) > 0 {
		commentsXML, err := b.commentsPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part{"word/comments.xml", commentsXML})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, pt := range parts {
		w, err := zw.Create(pt.name)
		if err != nil {
			return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot add package part %s", pt.name)
		}
		if _, err := w.Write(pt.data); err != nil {
			return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot write package part %s", pt.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot finish package")
	}
	return buf.Bytes(), nil
}

func (b *docBuilder) commentsPart() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:comments")
	root.CreateAttr("xmlns:w", wordNS)

	for _, c := range b.comments {
		el := root.CreateElement("w:comment")
		el.CreateAttr("w:id", strconv.Itoa(c.id))
		if c.author != "" {
			el.CreateAttr("w:author", c.author)
		}
		if c.initials != "" {
			el.CreateAttr("w:initials", c.initials)
		}
		if !c.date.IsZero() {
			el.CreateAttr("w:date", c.date.UTC().Format(time.RFC3339))
		}
		p := el.CreateElement("w:p")
		r := p.CreateElement("w:r")
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(c.text)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot serialize comments part")
	}
	return data, nil
}

func (b *docBuilder) contentTypes() []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="` + typesNS + `">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	if len(b.comments) > 0 {
		sb.WriteString(`<Override PartName="/word/comments.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.comments+xml"/>`)
	}
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}

func (b *docBuilder) documentRels() []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="` + packageRelNS + `">`)
	sb.WriteString(`<Relationship Id="rId1" Type="` + relNS + `/styles" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="` + relNS + `/numbering" Target="numbering.xml"/>`)
	if len(b.comments) > 0 {
		sb.WriteString(`<Relationship Id="rId3" Type="` + relNS + `/comments" Target="comments.xml"/>`)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

const packageRelsXML = xml.Header +
	`<Relationships xmlns="` + packageRelNS + `">` +
	`<Relationship Id="rId1" Type="` + relNS + `/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header +
	`<w:styles xmlns:w="` + wordNS + `">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/><w:color w:val="2F5496"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="28"/><w:color w:val="2F5496"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="24"/><w:color w:val="1F3763"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/></w:style>` +
	`</w:styles>`

const numberingXML = xml.Header +
	`<w:numbering xmlns:w="` + wordNS + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
	`</w:numbering>`
