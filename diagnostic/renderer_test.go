// Copyright © 2025 The lmnls authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
}

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lmn": "a(X).",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "Free link",
		Spans: []Span{
			{File: "test.lmn", Line: 1, Col: 3, EndCol: 3, Label: "occurs only once in this scope"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: Free link")
	assertContains(t, got, "--> test.lmn:1:3")
	assertContains(t, got, "a(X).")
	assertContains(t, got, "^")
	assertContains(t, got, "occurs only once in this scope")
}

func TestRenderSecondarySpans(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lmn": "a(X), b(X), c(X).",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "Link occurs more than twice",
		Spans: []Span{
			{File: "test.lmn", Line: 1, Col: 15, EndCol: 15},
			{File: "test.lmn", Line: 1, Col: 3, EndCol: 3, Label: "First occurrence"},
			{File: "test.lmn", Line: 1, Col: 9, EndCol: 9, Label: "Second occurrence"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: Link occurs more than twice")
	// Primary span underlined with ^, secondary spans with -.
	assertContains(t, got, "^")
	assertContains(t, got, "- First occurrence")
	assertContains(t, got, "- Second occurrence")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lmn": "a b.",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Message:  "missing comma between processes",
		Spans: []Span{
			{File: "test.lmn", Line: 1, Col: 3, EndCol: 3},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}
	assertContains(t, buf.String(), "warning: missing comma between processes")
}

func TestRenderMissingSource(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "Free link",
		Spans: []Span{
			{File: "gone.lmn", Line: 3, Col: 1},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// The location line still renders; no snippet without source.
	assertContains(t, got, "--> gone.lmn:3:1")
	if strings.Contains(got, "^") {
		t.Errorf("unexpected underline without source:\n%s", got)
	}
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{"test.lmn": "X."})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "Link at top level",
		Spans:    []Span{{File: "test.lmn", Line: 1, Col: 1, EndCol: 1}},
		Notes:    []string{"links must connect two atoms"},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}
	assertContains(t, buf.String(), "= note: links must connect two atoms")
}

func TestRenderAllSeparatesDiagnostics(t *testing.T) {
	r := testRenderer(map[string]string{"test.lmn": "a(X).\nb(Y)."})

	diags := []Diagnostic{
		{Severity: SeverityError, Message: "Free link",
			Spans: []Span{{File: "test.lmn", Line: 1, Col: 3, EndCol: 3}}},
		{Severity: SeverityError, Message: "Free link",
			Spans: []Span{{File: "test.lmn", Line: 2, Col: 3, EndCol: 3}}},
	}

	var buf bytes.Buffer
	if err := r.RenderAll(&buf, diags); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if strings.Count(got, "error: Free link") != 2 {
		t.Errorf("expected two rendered diagnostics:\n%s", got)
	}
	assertContains(t, got, "test.lmn:1:3")
	assertContains(t, got, "test.lmn:2:3")
}

func TestDetectEndCol(t *testing.T) {
	r := testRenderer(nil)
	// "abc(Xyz)" — token starting at col 5 runs to col 7.
	if got := r.detectEndCol("abc(Xyz)", 5); got != 7 {
		t.Errorf("detectEndCol = %d, want 7", got)
	}
	// Single character before a delimiter.
	if got := r.detectEndCol("a(X).", 3); got != 3 {
		t.Errorf("detectEndCol = %d, want 3", got)
	}
}

func TestParseColorMode(t *testing.T) {
	if ParseColorMode("always") != ColorAlways {
		t.Error("always should map to ColorAlways")
	}
	if ParseColorMode("never") != ColorNever {
		t.Error("never should map to ColorNever")
	}
	if ParseColorMode("auto") != ColorAuto {
		t.Error("auto should map to ColorAuto")
	}
	if ParseColorMode("bogus") != ColorAuto {
		t.Error("unknown values should fall back to ColorAuto")
	}
}
