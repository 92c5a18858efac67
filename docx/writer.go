package docx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/siddhant230/draftclaim"
)

// Ensure Writer implements draftclaim.ReportWriter.
var _ draftclaim.ReportWriter = (*Writer)(nil)

// Timestamp layouts for report filenames and the generated-at line.
const (
	fileTimestamp = "20060102_150405"
	metaTimestamp = "2006-01-02 15:04:05"
)

// questionColor is the accent color of the "Q: " marker in Q&A reports.
const questionColor = "1F497D"

// Writer exports reports as .docx files in a target directory. Files are
// named after the report's generation timestamp and never overwritten.
type Writer struct {
	dir string
}

// NewWriter creates a Writer that writes into dir. The directory is
// created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteAnalysis writes an analysis report as analysis_<timestamp>.docx
// and returns the created path. The report body's markdown subset is
// converted to document formatting.
func (w *Writer) WriteAnalysis(ctx context.Context, report *draftclaim.AnalysisReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := report.Validate(); err != nil {
		return "", err
	}

	title := report.Title
	if title == "" {
		title = draftclaim.AnalysisReportTitle
	}

	b := newDocBuilder()
	b.paragraph(paragraphOptions{style: styleTitle, centered: true}, run{text: title})
	b.paragraph(paragraphOptions{centered: true}, run{text: "Generated: " + report.GeneratedAt.Format(metaTimestamp)})
	b.paragraph(paragraphOptions{})
	writeBody(b, report.Body)

	data, err := b.bytes()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("analysis_%s.docx", report.GeneratedAt.Format(fileTimestamp))
	return w.create(name, data)
}

// WriteQA writes a verification transcript as qa_report_<timestamp>.docx
// and returns the created path.
func (w *Writer) WriteQA(ctx context.Context, report *draftclaim.QAReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := report.Validate(); err != nil {
		return "", err
	}

	title := report.Title
	if title == "" {
		title = draftclaim.QAReportTitle
	}

	b := newDocBuilder()
	b.paragraph(paragraphOptions{style: styleTitle, centered: true}, run{text: title})
	meta := fmt.Sprintf("Generated: %s  |  Total approved pairs: %d",
		report.GeneratedAt.Format(metaTimestamp), len(report.Pairs))
	b.paragraph(paragraphOptions{centered: true}, run{text: meta})
	b.paragraph(paragraphOptions{})

	for i, pair := range report.Pairs {
		b.paragraph(paragraphOptions{style: styleHeading2}, run{text: fmt.Sprintf("Question %d", i+1)})
		b.paragraph(paragraphOptions{},
			run{text: "Q: ", bold: true, color: questionColor},
			run{text: pair.Question})
		if pair.Context != "" {
			b.paragraph(paragraphOptions{},
				run{text: "Reviewer context: ", bold: true},
				run{text: pair.Context})
		}
		b.paragraph(paragraphOptions{})
		b.paragraph(paragraphOptions{}, run{text: "Answer:", bold: true})
		writeBody(b, pair.Answer)
		b.paragraph(paragraphOptions{})
		b.paragraph(paragraphOptions{}, run{text: strings.Repeat("─", 60)})
		b.paragraph(paragraphOptions{})
	}

	data, err := b.bytes()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("qa_report_%s.docx", report.GeneratedAt.Format(fileTimestamp))
	return w.create(name, data)
}

// writeBody converts generated text into document paragraphs line by
// line.
func writeBody(b *docBuilder, text string) {
	for _, line := range draftclaim.ParseLines(text) {
		switch line.Kind {
		case draftclaim.LineBlank:
			b.paragraph(paragraphOptions{})
		case draftclaim.LineHeading:
			styles := [...]string{styleHeading1, styleHeading2, styleHeading3}
			b.paragraph(paragraphOptions{style: styles[line.Level-1]}, run{text: line.Text})
		case draftclaim.LineBullet:
			b.paragraph(paragraphOptions{style: styleListBullet, numID: numIDBullet}, run{text: line.Text})
		case draftclaim.LineNumbered:
			b.paragraph(paragraphOptions{style: styleListNumber, numID: numIDDecimal}, run{text: line.Text})
		default:
			b.paragraph(paragraphOptions{}, spanRuns(draftclaim.SplitBold(line.Text))...)
		}
	}
}

func (w *Writer) create(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot create output directory %s", w.dir)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", draftclaim.Errorf(draftclaim.ECONFLICT, "report %s already exists", path)
		}
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot create report %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot write report %s", path)
	}
	if err := f.Close(); err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot write report %s", path)
	}
	return path, nil
}
