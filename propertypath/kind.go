package propertypath

//go:generate go tool stringer -type=SegmentKind -trimprefix=Segment -output=kind_string.go

// SegmentKind tells how a segment steps from the current object to the next.
type SegmentKind int

const (
	// SegmentMember is a plain member access: "name".
	SegmentMember SegmentKind = iota
	// SegmentIndex resolves member "name" and takes the element at Index: "name[2]".
	SegmentIndex
	// SegmentLength resolves member "name" and yields its element count: "name.Array.size".
	SegmentLength
)
