package lookup

import (
	"errors"
	"fmt"
	"reflect"

	"fieldpath/internal/diagnostic"
	"fieldpath/internal/match"
	"fieldpath/marker"
	"fieldpath/propertypath"
	"fieldpath/resolve"
)

// DefaultSuggestions is the number of close names attached to a diagnostic.
const DefaultSuggestions = 3

// Finder combines the label index with the path resolver.
type Finder struct {
	index       *marker.Index
	resolver    *resolve.Resolver
	suggestions int
}

// Option configures a Finder.
type Option func(*Finder)

// WithIndex sets the label index, e.g. one reading a custom tag key.
func WithIndex(x *marker.Index) Option {
	return func(f *Finder) {
		f.index = x
	}
}

// WithResolver sets the path resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(f *Finder) {
		f.resolver = r
	}
}

// WithSuggestions sets how many close names diagnostics carry. Zero disables them.
func WithSuggestions(n int) Option {
	return func(f *Finder) {
		f.suggestions = n
	}
}

// New creates a Finder reading the default tag with the default resolver.
func New(opts ...Option) *Finder {
	f := &Finder{
		index:       marker.NewIndex(marker.DefaultTagKey),
		resolver:    resolve.New(),
		suggestions: DefaultSuggestions,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// StorageName translates label into the storage name of a field of root's type.
func (f *Finder) StorageName(root any, label string) (string, error) {
	l, err := f.find(root, label)
	if err != nil {
		return "", err
	}

	return l.Storage, nil
}

func (f *Finder) find(root any, label string) (marker.Label, error) {
	t := reflect.TypeOf(root)

	l, ok := f.index.Find(t, label)
	if !ok {
		return marker.Label{}, newError(diagnostic.CodeLabelNotFound,
			fmt.Sprintf("no field labelled %q", label),
			typeName(t), "", f.suggest(label, f.labels(t)))
	}

	return l, nil
}

// ByLabel returns the value of the field of root carrying label. A field of
// an embedded struct is read through its embedding chain, so an outer field
// with the same name does not shadow it.
func (f *Finder) ByLabel(root any, label string) (any, error) {
	l, err := f.find(root, label)
	if err != nil {
		return nil, err
	}

	var p propertypath.Path
	for _, name := range l.Path() {
		p = p.Child(propertypath.Member(name))
	}

	v, ok := f.resolver.ResolvePath(root, p)
	if !ok {
		if isNil(root) {
			return nil, newError(diagnostic.CodeNilSegment,
				fmt.Sprintf("nil value has no field %q", l.Storage), typeName(reflect.TypeOf(root)), "", nil)
		}

		return nil, newError(diagnostic.CodeSegmentNotFound,
			fmt.Sprintf("field %q labelled %q does not resolve", l.Storage, label),
			typeName(reflect.TypeOf(root)), p.String(), nil)
	}

	return v, nil
}

// RelativeByLabel resolves path from root, then the field carrying label on
// the object found there.
func (f *Finder) RelativeByLabel(root any, path, label string) (any, error) {
	obj, err := f.Target(root, path)
	if err != nil {
		var cause *Error
		if !errors.As(err, &cause) {
			return nil, err
		}

		return nil, newError(diagnostic.CodePathNotResolved,
			fmt.Sprintf("cannot resolve %q: %s", path, cause.Message),
			cause.Type, cause.Path, cause.Suggestions)
	}

	return f.ByLabel(obj, label)
}

// Target returns the object path points at, or an *Error naming the first
// segment that failed.
func (f *Finder) Target(root any, path string) (any, error) {
	if v, ok := f.resolver.Resolve(root, path); ok {
		return v, nil
	}

	diags := f.Explain(root, path)
	if first, ok := diags.First(); ok {
		return nil, &Error{Diagnostic: first}
	}

	return nil, newError(diagnostic.CodePathNotResolved,
		fmt.Sprintf("cannot resolve %q", path), typeName(reflect.TypeOf(root)), "", nil)
}

// Explain walks path one segment at a time and reports where it stops. A
// path that resolves yields a single info, plus a warning when the value is nil.
func (f *Finder) Explain(root any, path string) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	p, err := propertypath.Parse(path)
	if err != nil {
		diags.AddError(diagnostic.CodeMalformedPath, err.Error(), "", path)

		return diags
	}

	parent := root

	for i, seg := range p.Segments {
		prefix := p.Prefix(i).String()

		next, ok := f.resolver.ResolvePath(root, p.Prefix(i+1))
		if !ok {
			diags.Add(f.explainSegment(parent, prefix, seg))

			return diags
		}

		parent = next
	}

	diags.AddInfo(diagnostic.CodeResolved,
		fmt.Sprintf("resolved to %s", valueType(parent)), typeName(reflect.TypeOf(root)), p.String())

	if isNil(parent) {
		diags.AddWarning(diagnostic.CodeNilResult, "value is nil", typeName(reflect.TypeOf(root)), p.String())
	}

	return diags
}

// explainSegment diagnoses why seg does not resolve on parent, the value at
// prefix.
func (f *Finder) explainSegment(parent any, prefix string, seg propertypath.Segment) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Type:     typeName(reflect.TypeOf(parent)),
		Path:     prefix,
	}

	if isNil(parent) {
		d.Code = diagnostic.CodeNilSegment
		d.Message = fmt.Sprintf("nil value has no member %q", seg.Name)

		return d
	}

	member, ok := f.resolver.ResolveMember(parent, seg.Name)
	if !ok {
		d.Code = diagnostic.CodeSegmentNotFound
		d.Message = fmt.Sprintf("no member %q", seg.Name)
		d.Suggestions = f.suggest(seg.Name, f.resolver.Members(parent))

		return d
	}

	d.Type = typeName(reflect.TypeOf(member))
	d.Path = joinPath(prefix, seg.Name)

	lengthOf := propertypath.Path{Segments: []propertypath.Segment{propertypath.Length(seg.Name)}}

	n, isSeq := f.resolver.ResolvePath(parent, lengthOf)
	if seg.Kind == propertypath.SegmentIndex && isSeq {
		d.Code = diagnostic.CodeIndexOutOfRange
		d.Message = fmt.Sprintf("index %d out of range [0,%v)", seg.Index, n)

		return d
	}

	d.Code = diagnostic.CodeNotASequence
	d.Message = fmt.Sprintf("%s is not a sequence", valueType(member))

	return d
}

func (f *Finder) labels(t reflect.Type) []string {
	var names []string
	for _, l := range f.index.Labels(t) {
		names = append(names, l.Label)
	}

	return names
}

func (f *Finder) suggest(name string, candidates []string) []string {
	if f.suggestions <= 0 {
		return nil
	}

	s := match.Suggest(name, candidates, f.suggestions)
	if len(s) == 0 {
		return nil
	}

	return s
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

// typeName spells t without pointer stars, "" for nil.
func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return ""
	}

	return t.String()
}

func valueType(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil()
}
