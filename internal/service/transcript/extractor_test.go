package transcript

import (
	"strings"
	"testing"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

func TestExtractVideoIDShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.VideoID
		shape URLShape
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapeQuery},
		{"watch with params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", ShapeQuery},
		{"mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapeQuery},
		{"music", "https://music.youtube.com/watch?v=a_b-c1D2e3F", "a_b-c1D2e3F", ShapeQuery},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapeShort},
		{"short link with share id", "https://youtu.be/dQw4w9WgXcQ?si=XYZ123", "dQw4w9WgXcQ", ShapeShort},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapeEmbed},
		{"shorts", "https://www.youtube.com/shorts/abcDEF12345", "abcDEF12345", ShapeShorts},
		{"live", "https://www.youtube.com/live/abcDEF12345?feature=share", "abcDEF12345", ShapeLive},
		{"legacy", "http://www.youtube.com/v/dQw4w9WgXcQ?version=3", "dQw4w9WgXcQ", ShapeLegacy},
		{"unknown path", "https://example.com/dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapePath},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ \n", "dQw4w9WgXcQ", ShapeShort},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ShapeQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MatchVideoID(tt.input)
			if !ok {
				t.Fatalf("expected match for %q", tt.input)
			}
			if m.VideoID != tt.want {
				t.Errorf("VideoID = %q, want %q", m.VideoID, tt.want)
			}
			if m.Shape != tt.shape {
				t.Errorf("Shape = %q, want %q", m.Shape, tt.shape)
			}
		})
	}
}

func TestExtractVideoIDNotFound(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url",
		"dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/watch?v=dQw4w9W!XcQ",
		"https://youtu.be/",
		"https://example.com/a.b.c.d.e.f",
	}
	for _, input := range inputs {
		if id, ok := ExtractVideoID(input); ok {
			t.Errorf("ExtractVideoID(%q) = %q, want NotFound", input, id)
		}
	}
}

func TestExtractVideoIDQueryMarkerProperty(t *testing.T) {
	ids := []string{"dQw4w9WgXcQ", "___________", "-----------", "A1b2C3d4E5f"}
	wrappers := []string{
		"v=%s",
		"https://www.youtube.com/watch?v=%s",
		"https://example.com/abcdefghijk?v=%s",
		"text before v=%s and after",
	}
	for _, id := range ids {
		for _, wrap := range wrappers {
			input := strings.Replace(wrap, "%s", id, 1)
			got, ok := ExtractVideoID(input)
			if !ok || string(got) != id {
				t.Errorf("ExtractVideoID(%q) = %q, %v; want %q", input, got, ok, id)
			}
		}
	}
}

func TestExtractVideoIDPathProperty(t *testing.T) {
	ids := []string{"dQw4w9WgXcQ", "xyz_ABC-123"}
	wrappers := []string{
		"/%s",
		"https://youtu.be/%s",
		"https://host.example/%s/extra",
		"see /%s now",
	}
	for _, id := range ids {
		for _, wrap := range wrappers {
			input := strings.Replace(wrap, "%s", id, 1)
			got, ok := ExtractVideoID(input)
			if !ok || string(got) != id {
				t.Errorf("ExtractVideoID(%q) = %q, %v; want %q", input, got, ok, id)
			}
		}
	}
}

func TestExtractVideoIDLeftmostWithinShape(t *testing.T) {
	got, ok := ExtractVideoID("https://youtu.be/AAAAAAAAAAA https://youtu.be/BBBBBBBBBBB")
	if !ok || got != "AAAAAAAAAAA" {
		t.Fatalf("expected leftmost identifier, got %q", got)
	}
}

// Shape order wins over position: an embed segment later in the string beats an
// earlier bare path segment.
func TestExtractVideoIDShapeOrderBeatsPosition(t *testing.T) {
	m, ok := MatchVideoID("https://example.com/AAAAAAAAAAA/embed/BBBBBBBBBBB")
	if !ok {
		t.Fatal("expected a match")
	}
	if m.VideoID != "BBBBBBBBBBB" || m.Shape != ShapeEmbed {
		t.Fatalf("got %q via %q, want BBBBBBBBBBB via %q", m.VideoID, m.Shape, ShapeEmbed)
	}

	m, ok = MatchShape("https://example.com/AAAAAAAAAAA/embed/BBBBBBBBBBB", ShapePath)
	if !ok || m.VideoID != "AAAAAAAAAAA" {
		t.Fatalf("path shape alone should still find the leftmost segment, got %+v", m)
	}
}

func TestExtractVideoIDSkipsShortCandidates(t *testing.T) {
	got, ok := ExtractVideoID("https://example.com/short/dQw4w9WgXcQ")
	if !ok || got != "dQw4w9WgXcQ" {
		t.Fatalf("expected later valid candidate, got %q %v", got, ok)
	}
}

func TestMatchShape(t *testing.T) {
	if _, ok := MatchShape("https://www.youtube.com/watch?v=dQw4w9WgXcQ", ShapeEmbed); ok {
		t.Fatalf("embed shape must not match a watch URL")
	}
	m, ok := MatchShape("https://www.youtube.com/embed/dQw4w9WgXcQ", ShapeEmbed)
	if !ok || m.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("embed shape did not match: %+v", m)
	}
	if _, ok := MatchShape("https://youtu.be/dQw4w9WgXcQ", URLShape("unknown")); ok {
		t.Fatalf("unknown shape must never match")
	}
}

func TestShapesOrder(t *testing.T) {
	shapes := Shapes()
	if shapes[0] != ShapeQuery || shapes[len(shapes)-1] != ShapePath {
		t.Fatalf("unexpected shape order %v", shapes)
	}
}
