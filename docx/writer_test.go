package docx_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func readBack(t *testing.T, path string, role draftclaim.DocumentRole) *draftclaim.Document {
	t.Helper()

	doc, err := docx.NewReader().ReadDocument(context.Background(), path, role)
	require.NoError(t, err)
	return doc
}

func TestWriter_WriteAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("writes a readable report", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		report := &draftclaim.AnalysisReport{
			Title:       draftclaim.AnalysisReportTitle,
			Model:       "llama3.2",
			GeneratedAt: testGeneratedAt,
			Body: "### 1. Coverage Assessment\n" +
				"The claims **broadly** cover the invention.\n\n" +
				"- sensor placement is covered\n" +
				"1. first gap\n",
		}

		path, err := docx.NewWriter(dir).WriteAnalysis(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "analysis_20240115_103000.docx"), path)

		doc := readBack(t, path, draftclaim.RoleDisclosure)
		assert.True(t, strings.HasPrefix(doc.Text,
			"Patent Claim Analysis Report\nGenerated: 2024-01-15 10:30:00"))
		assert.Contains(t, doc.Text, "1. Coverage Assessment")
		assert.Contains(t, doc.Text, "The claims broadly cover the invention.")
		assert.Contains(t, doc.Text, "sensor placement is covered")
		assert.Contains(t, doc.Text, "first gap")
		assert.NotContains(t, doc.Text, "**")
	})

	t.Run("never overwrites an existing report", func(t *testing.T) {
		t.Parallel()

		writer := docx.NewWriter(t.TempDir())
		report := &draftclaim.AnalysisReport{GeneratedAt: testGeneratedAt, Body: "analysis"}

		_, err := writer.WriteAnalysis(context.Background(), report)
		require.NoError(t, err)

		_, err = writer.WriteAnalysis(context.Background(), report)
		require.Error(t, err)
		assert.Equal(t, draftclaim.ECONFLICT, draftclaim.ErrorCode(err))
	})

	t.Run("requires a body", func(t *testing.T) {
		t.Parallel()

		report := &draftclaim.AnalysisReport{GeneratedAt: testGeneratedAt, Body: "  \n"}

		_, err := docx.NewWriter(t.TempDir()).WriteAnalysis(context.Background(), report)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
	})
}

func TestWriter_WriteQA(t *testing.T) {
	t.Parallel()

	t.Run("round trips questions and approved answers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		report := &draftclaim.QAReport{
			Title:       draftclaim.QAReportTitle,
			Model:       "llama3.2",
			GeneratedAt: testGeneratedAt,
			Pairs: []draftclaim.QAPair{
				{
					Question: "Does Claim 1 cover the sensor placement?",
					Answer:   "Yes. The disclosure describes the sensor **in the base cap**.",
				},
				{
					Question: "Is the wireless module term too broad?",
					Answer:   "The disclosure only enables BLE.",
					Context:  "consider Wi-Fi variants",
				},
			},
		}

		path, err := docx.NewWriter(dir).WriteQA(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "qa_report_20240115_103000.docx"), path)

		doc := readBack(t, path, draftclaim.RoleDisclosure)
		assert.True(t, strings.HasPrefix(doc.Text,
			"Patent Claim Verification — Q&A Report\n"+
				"Generated: 2024-01-15 10:30:00  |  Total approved pairs: 2"))
		assert.Contains(t, doc.Text, "Question 1")
		assert.Contains(t, doc.Text, "Q: Does Claim 1 cover the sensor placement?")
		assert.Contains(t, doc.Text, "Yes. The disclosure describes the sensor in the base cap.")
		assert.Contains(t, doc.Text, "Question 2")
		assert.Contains(t, doc.Text, "Reviewer context: consider Wi-Fi variants")
		assert.Contains(t, doc.Text, "The disclosure only enables BLE.")
		assert.Contains(t, doc.Text, strings.Repeat("─", 60))
	})

	t.Run("requires at least one pair", func(t *testing.T) {
		t.Parallel()

		report := &draftclaim.QAReport{GeneratedAt: testGeneratedAt}

		_, err := docx.NewWriter(t.TempDir()).WriteQA(context.Background(), report)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
	})

	t.Run("never overwrites an existing report", func(t *testing.T) {
		t.Parallel()

		writer := docx.NewWriter(t.TempDir())
		report := &draftclaim.QAReport{
			GeneratedAt: testGeneratedAt,
			Pairs:       []draftclaim.QAPair{{Question: "Q", Answer: "A"}},
		}

		_, err := writer.WriteQA(context.Background(), report)
		require.NoError(t, err)

		_, err = writer.WriteQA(context.Background(), report)
		require.Error(t, err)
		assert.Equal(t, draftclaim.ECONFLICT, draftclaim.ErrorCode(err))
	})
}
