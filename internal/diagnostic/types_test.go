package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    Diagnostic{Message: "boom"},
			want: "boom",
		},
		{
			name: "full",
			d: Diagnostic{
				Code:        CodeSegmentNotFound,
				Message:     `no member "dmg"`,
				Type:        "armory.Weapon",
				Path:        "weapons[0]",
				Suggestions: []string{"Damage"},
			},
			want: `[armory.Weapon] weapons[0]: [SEGMENT_NOT_FOUND] no member "dmg" (did you mean Damage?)`,
		},
		{
			name: "path without type",
			d:    Diagnostic{Code: CodeNilSegment, Message: "nil value", Path: "Owner"},
			want: "Owner: [NIL_SEGMENT] nil value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestDiagnostics_Severities(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddInfo(CodeResolved, "ok", "", "a")
	d.AddWarning(CodeNilResult, "nil", "", "b")
	assert.False(t, d.HasErrors())

	d.AddError(CodeLabelNotFound, `no label "Helth"`, "armory.Weapon", "", "Health")
	d.AddError(CodeMalformedPath, "bad", "", "x[")

	assert.Len(t, d.Infos, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Errors, 2)

	first, ok := d.First()
	require.True(t, ok)
	assert.Equal(t, CodeLabelNotFound, first.Code)
	assert.Equal(t, []string{"Health"}, first.Suggestions)

	assert.EqualError(t, d.Error(),
		`[armory.Weapon]: [LABEL_NOT_FOUND] no label "Helth" (did you mean Health?); x[: [MALFORMED_PATH] bad`)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError(CodeNilSegment, "nil", "", "")
	b.AddError(CodeSegmentNotFound, "missing", "", "")
	b.AddInfo(CodeResolved, "ok", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
