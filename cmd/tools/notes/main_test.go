package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/adapter"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

func TestPrintResultsSummaryFailureIsNotTranscriptError(t *testing.T) {
	formatter := adapter.NewResponseFormatter("!", false, false)
	results := []linkNotes{
		{URL: "https://youtu.be/dQw4w9WgXcQ", Error: summaryErrorText(errors.New("gemini: quota"), false)},
		{URL: "https://youtu.be/abcDEF12345", Result: domain.NewSummaryResult("abcDEF12345", "", "1. Point", nil)},
	}

	var sb strings.Builder
	printResults(&sb, formatter, results)
	out := sb.String()

	if !strings.Contains(out, formatter.FormatSummaryError()) {
		t.Fatalf("missing summary error reply:\n%s", out)
	}
	if strings.Contains(out, domain.MessageUnclassifiedGeneric) {
		t.Fatalf("model failure rendered as a transcript failure:\n%s", out)
	}
	if strings.Contains(out, "quota") {
		t.Fatalf("error details leaked without opt-in:\n%s", out)
	}
	if !strings.Contains(out, "1. Point") || !strings.Contains(out, "\n---\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSummaryErrorText(t *testing.T) {
	err := errors.New("summarize dQw4w9WgXcQ: service unavailable")
	if got := summaryErrorText(err, true); got != err.Error() {
		t.Fatalf("exposed text = %q", got)
	}
	if got := summaryErrorText(err, false); strings.Contains(got, "unavailable") {
		t.Fatalf("hidden text = %q", got)
	}
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "notes.json")
	results := []linkNotes{{URL: "bad", Result: domain.NewErrorResult("", domain.NewInvalidURLFailure())}}
	if err := writeResults(path, results); err != nil {
		t.Fatalf("writeResults() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["url"] != "bad" {
		t.Fatalf("unexpected output %s", data)
	}
}
