package transcript

import (
	"strings"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

// URLShape names one accepted way a video identifier appears in a link.
type URLShape string

const (
	ShapeQuery  URLShape = "query"  // watch?v=ID, &v=ID
	ShapeShort  URLShape = "short"  // youtu.be/ID
	ShapeEmbed  URLShape = "embed"  // /embed/ID
	ShapeShorts URLShape = "shorts" // /shorts/ID
	ShapeLive   URLShape = "live"   // /live/ID
	ShapeLegacy URLShape = "legacy" // /v/ID
	ShapePath   URLShape = "path"   // any /ID
)

type shapeRule struct {
	shape  URLShape
	marker string
}

// shapeRules is evaluated in order; the first rule with a match wins.
// The trailing path rule keeps unknown link shapes working.
var shapeRules = []shapeRule{
	{shape: ShapeQuery, marker: "v="},
	{shape: ShapeShort, marker: "youtu.be/"},
	{shape: ShapeEmbed, marker: "/embed/"},
	{shape: ShapeShorts, marker: "/shorts/"},
	{shape: ShapeLive, marker: "/live/"},
	{shape: ShapeLegacy, marker: "/v/"},
	{shape: ShapePath, marker: "/"},
}

// Shapes returns the accepted URL shapes in evaluation order.
func Shapes() []URLShape {
	shapes := make([]URLShape, len(shapeRules))
	for i, rule := range shapeRules {
		shapes[i] = rule.shape
	}
	return shapes
}

// Match is a located video identifier.
type Match struct {
	VideoID domain.VideoID
	Shape   URLShape
	// Offset is the byte index of the identifier in the trimmed input.
	Offset int
}

// ExtractVideoID returns the video identifier found in raw, if any.
func ExtractVideoID(raw string) (domain.VideoID, bool) {
	m, ok := MatchVideoID(raw)
	if !ok {
		return "", false
	}
	return m.VideoID, true
}

// MatchVideoID locates the identifier in raw. raw need not be a URL.
func MatchVideoID(raw string) (Match, bool) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Match{}, false
	}
	for _, rule := range shapeRules {
		if m, ok := matchShape(input, rule); ok {
			return m, true
		}
	}
	return Match{}, false
}

// MatchShape applies a single shape rule, for callers that only accept one link form.
func MatchShape(raw string, shape URLShape) (Match, bool) {
	input := strings.TrimSpace(raw)
	for _, rule := range shapeRules {
		if rule.shape == shape {
			return matchShape(input, rule)
		}
	}
	return Match{}, false
}

// matchShape scans every occurrence of the marker, leftmost first, and accepts the
// first one followed by 11 identifier characters. Characters after the 11th are not inspected.
func matchShape(input string, rule shapeRule) (Match, bool) {
	from := 0
	for from < len(input) {
		idx := strings.Index(input[from:], rule.marker)
		if idx < 0 {
			return Match{}, false
		}
		start := from + idx + len(rule.marker)
		if id, ok := readVideoID(input, start); ok {
			return Match{VideoID: id, Shape: rule.shape, Offset: start}, true
		}
		from = from + idx + 1
	}
	return Match{}, false
}

func readVideoID(input string, start int) (domain.VideoID, bool) {
	end := start + domain.VideoIDLength
	if end > len(input) {
		return "", false
	}
	for i := start; i < end; i++ {
		if !domain.IsVideoIDChar(input[i]) {
			return "", false
		}
	}
	return domain.VideoID(input[start:end]), true
}
