package repository

import (
	"strings"
	"testing"
)

func TestTruncateSummary_ShortTextUntouched(t *testing.T) {
	if got := TruncateSummary("  hello  ", 400); got != "hello" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestTruncateSummary_OverflowGetsEllipsis(t *testing.T) {
	long := strings.Repeat("x", 500)

	got := TruncateSummary(long, ActivitySummaryMaxLen)
	if len(got) != ActivitySummaryMaxLen+3 {
		t.Fatalf("expected %d chars, got %d", ActivitySummaryMaxLen+3, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
}

func TestTruncateSummary_ExactLengthUntouched(t *testing.T) {
	exact := strings.Repeat("x", ActivitySummaryMaxLen)

	if got := TruncateSummary(exact, ActivitySummaryMaxLen); got != exact {
		t.Fatalf("exact-length text must not be truncated")
	}
}

func TestDecodeActivityMetadata(t *testing.T) {
	got, err := decodeActivityMetadata([]byte(`{"elapsed_days":16}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["elapsed_days"] != float64(16) {
		t.Fatalf("unexpected metadata %v", got)
	}

	if got, err := decodeActivityMetadata(nil); err != nil || got != nil {
		t.Fatalf("empty column must decode to nil, got %v / %v", got, err)
	}

	if _, err := decodeActivityMetadata([]byte(`{broken`)); err == nil {
		t.Fatalf("corrupt metadata must surface a decode error")
	}
}
