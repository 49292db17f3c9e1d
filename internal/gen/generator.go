package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"text/template"

	"fieldpath/internal/analyze"
	"fieldpath/internal/common"
)

// DefaultFilename is the name of the generated file.
const DefaultFilename = "zz_accessors.go"

// DefaultAccessorImport is the import path of the accessor package.
const DefaultAccessorImport = "fieldpath/accessor"

// ErrNoStructs is returned for packages without named non-generic structs.
var ErrNoStructs = errors.New("no structs to generate accessors for")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package clause; empty uses the analysed package's name.
	PackageName string
	// AccessorImport is the import path of the accessor package.
	AccessorImport string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir receives an unformatted sidecar file when formatting fails.
	OutputDir string
	// Unexported includes unexported fields and methods.
	Unexported bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		AccessorImport: DefaultAccessorImport,
		Filename:       DefaultFilename,
		Unexported:     true,
	}
}

// Generator generates accessor registration code from a type graph.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.AccessorImport == "" {
		config.AccessorImport = DefaultAccessorImport
	}

	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "zz_accessors.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders the accessor file for the package at pkgPath.
func (g *Generator) Generate(graph *analyze.TypeGraph, pkgPath string) (*GeneratedFile, error) {
	pkg := graph.Packages[pkgPath]
	if pkg == nil {
		return nil, fmt.Errorf("package %s not loaded", pkgPath)
	}

	structs := graph.Structs(pkgPath)
	if len(structs) == 0 {
		return nil, fmt.Errorf("package %s: %w", pkgPath, ErrNoStructs)
	}

	data := &templateData{
		PackageName:    g.config.PackageName,
		AccessorImport: g.config.AccessorImport,
		Accessor:       common.PkgAlias(g.config.AccessorImport),
	}

	if data.PackageName == "" {
		data.PackageName = pkg.Name
	}

	for _, st := range structs {
		data.Tables = append(data.Tables, g.buildTable(st))
	}

	var buf bytes.Buffer
	if err := accessorsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// buildTable collects the members of one struct.
func (g *Generator) buildTable(st *analyze.TypeInfo) tableData {
	t := tableData{Type: st.ID.Name}

	for i := range st.Fields {
		f := &st.Fields[i]
		if f.Name == "_" || (!f.Exported && !g.config.Unexported) {
			continue
		}

		t.Fields = append(t.Fields, memberData{Name: f.Name, Expr: "v." + f.Name})

		if !f.Embedded {
			continue
		}

		switch {
		case f.Type.Kind == analyze.TypeKindPointer && f.Type.Struct() != nil:
			t.Embedded = append(t.Embedded, "v."+f.Name)
		case f.Type.Kind == analyze.TypeKindStruct:
			t.Embedded = append(t.Embedded, "&v."+f.Name)
		}
	}

	for _, m := range st.Methods {
		if !m.Exported && !g.config.Unexported {
			continue
		}

		t.Properties = append(t.Properties, memberData{Name: m.Name, Expr: "v." + m.Name + "()"})
	}

	return t
}

// templateData holds all data needed for the accessors template.
type templateData struct {
	PackageName    string
	AccessorImport string
	Accessor       string
	Tables         []tableData
}

// tableData is one registered struct.
type tableData struct {
	Type       string
	Fields     []memberData
	Properties []memberData
	Embedded   []string
}

// memberData is one getter: its name and the expression reading it from v.
type memberData struct {
	Name string
	Expr string
}

var accessorsTemplate = template.Must(
	template.New("accessors").
		Parse(`// Code generated by fieldpath gen. DO NOT EDIT.

package {{.PackageName}}

import "{{.AccessorImport}}"

func init() {
{{- range $t := .Tables}}
	{{$.Accessor}}.Register({{$.Accessor}}.Table[{{$t.Type}}]{
{{- if $t.Fields}}
		Fields: []{{$.Accessor}}.Member[{{$t.Type}}]{
{{- range $t.Fields}}
			{Name: {{printf "%q" .Name}}, Get: func(v *{{$t.Type}}) any { return {{.Expr}} }},
{{- end}}
		},
{{- end}}
{{- if $t.Properties}}
		Properties: []{{$.Accessor}}.Member[{{$t.Type}}]{
{{- range $t.Properties}}
			{Name: {{printf "%q" .Name}}, Get: func(v *{{$t.Type}}) any { return {{.Expr}} }},
{{- end}}
		},
{{- end}}
{{- if $t.Embedded}}
		Embedded: []func(v *{{$t.Type}}) any{
{{- range $t.Embedded}}
			func(v *{{$t.Type}}) any { return {{.}} },
{{- end}}
		},
{{- end}}
	})
{{- end}}
}
`))
