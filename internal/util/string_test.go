package util

import "testing"

func TestTruncateString(t *testing.T) {
	if got := TruncateString("요약 노트입니다", 2); got != "요약..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Fatalf("short strings must be unchanged, got %q", got)
	}
}

func TestStripControlChars(t *testing.T) {
	in := "https://youtu.be/dQw4w9WgXcQ\x00\x1b\n"
	if got := StripControlChars(in); got != "https://youtu.be/dQw4w9WgXcQ\n" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestContains(t *testing.T) {
	rooms := []string{"notes", "general"}
	if !Contains(rooms, "general") || Contains(rooms, "random") {
		t.Fatalf("Contains returned wrong result")
	}
}
