package main

import (
	"bytes"
	"strings"
	"testing"
)

func sampleReport() *analysisReport {
	return &analysisReport{
		Results: []analysisResult{
			{
				Source:        "essay.txt",
				IsAIGenerated: true,
				Confidence:    0.74,
				Profile:       "classroom-default",
				Strategy:      "weighted_sum",
				WordCount:     320,
				SentenceCount: 18,
				Explanation:   "The passage shows low vocabulary diversity.",
			},
			{
				Source:        "journal.txt",
				IsAIGenerated: false,
				Confidence:    0.28,
				Profile:       "classroom-default",
				Strategy:      "weighted_sum",
				WordCount:     150,
				SentenceCount: 9,
			},
		},
	}
}

func TestAnalysisReportTable(t *testing.T) {
	report := sampleReport()

	header := report.TableHeader()
	rows := report.TableRows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(header) {
			t.Errorf("row %d width %d != header width %d", i, len(row), len(header))
		}
	}
	if rows[0][1] != "ai" || rows[1][1] != "human" {
		t.Errorf("verdict columns = %q, %q", rows[0][1], rows[1][1])
	}
}

func TestWriteAnalysisText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := writeAnalysisText(buf, sampleReport()); err != nil {
		t.Fatalf("writeAnalysisText() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "likely AI-generated") {
		t.Errorf("output missing AI verdict:\n%s", out)
	}
	if !strings.Contains(out, "likely human-written") {
		t.Errorf("output missing human verdict:\n%s", out)
	}
	if !strings.Contains(out, "low vocabulary diversity") {
		t.Errorf("output missing explanation:\n%s", out)
	}
}
