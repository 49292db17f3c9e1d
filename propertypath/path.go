package propertypath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Host serialization markers.
const (
	ArrayDataInfix  = ".Array.data["
	ArraySizeSuffix = ".Array.size"
)

// lengthSelector is the compact form of a length segment: "name[#]".
const lengthSelector = "#"

var (
	ErrEmptyPath    = errors.New("empty path")
	ErrEmptySegment = errors.New("empty segment")
	ErrBadIndex     = errors.New("bad index")
)

var (
	// segmentRe matches "name" or "name[selector]". A segment carries at
	// most one selector; chained selectors such as "a[1][2]" are malformed.
	segmentRe = regexp2.MustCompile(`^(?<name>[^\[\]]+)(?:\[(?<selector>[^\[\]]*)\])?$`, regexp2.None)
	// arraySizeRe matches a size marker that ends the path or a segment.
	arraySizeRe = regexp2.MustCompile(`\.Array\.size(?=\.|$)`, regexp2.None)
)

// Segment is one "name" or "name[index]" unit of a dotted path.
type Segment struct {
	Name  string
	Kind  SegmentKind
	Index int // element position for SegmentIndex, zero otherwise
}

// Member returns a plain member segment.
func Member(name string) Segment {
	return Segment{Name: name, Kind: SegmentMember}
}

// Element returns an indexed segment.
func Element(name string, index int) Segment {
	return Segment{Name: name, Kind: SegmentIndex, Index: index}
}

// Length returns a length segment.
func Length(name string) Segment {
	return Segment{Name: name, Kind: SegmentLength}
}

// String returns the compact form of the segment.
func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	case SegmentLength:
		return s.Name + ArraySizeSuffix
	default:
		return s.Name
	}
}

// Path is an ordered sequence of segments.
type Path struct {
	Segments []Segment
}

// String returns the compact form, e.g. "weapons[1].damage".
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// HostString returns the host serialization form, e.g. "weapons.Array.data[1].damage".
func (p Path) HostString() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		if s.Kind == SegmentIndex {
			parts[i] = s.Name + ".Array.data[" + strconv.Itoa(s.Index) + "]"
			continue
		}

		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}

// Prefix returns the path made of the first n segments.
func (p Path) Prefix(n int) Path {
	n = max(0, min(n, len(p.Segments)))

	return Path{Segments: p.Segments[:n:n]}
}

// Child returns a new path with seg appended.
func (p Path) Child(seg Segment) Path {
	segments := make([]Segment, 0, len(p.Segments)+1)
	segments = append(segments, p.Segments...)

	return Path{Segments: append(segments, seg)}
}

// Normalize rewrites the host container markers into the compact form:
// "a.Array.data[3].b" becomes "a[3].b" and "a.Array.size" becomes "a[#]".
func Normalize(path string) string {
	path = strings.ReplaceAll(path, ArrayDataInfix, "[")

	out, err := arraySizeRe.Replace(path, "["+lengthSelector+"]", -1, -1)
	if err != nil {
		// Only a match timeout can fail here and none is configured.
		return path
	}

	return out
}

// Parse normalizes and splits a path string into segments.
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, ErrEmptyPath
	}

	var segments []Segment

	for part := range strings.SplitSeq(Normalize(path), ".") {
		seg, err := ParseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", path, err)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return p
}

// ParseSegment parses a single compact segment such as "items", "items[2]"
// or "items[#]".
func ParseSegment(part string) (Segment, error) {
	if part == "" {
		return Segment{}, ErrEmptySegment
	}

	m, err := segmentRe.FindStringMatch(part)
	if err != nil {
		return Segment{}, fmt.Errorf("segment %q: %w", part, err)
	}

	if m == nil {
		return Segment{}, fmt.Errorf("segment %q: malformed selector", part)
	}

	name := m.GroupByName("name").String()

	sel := m.GroupByName("selector")
	if len(sel.Captures) == 0 {
		return Member(name), nil
	}

	selector := sel.String()
	if selector == lengthSelector {
		return Length(name), nil
	}

	index, err := strconv.Atoi(selector)
	if err != nil || index < 0 {
		return Segment{}, fmt.Errorf("segment %q: %w: %q", part, ErrBadIndex, selector)
	}

	return Element(name, index), nil
}
