// Copyright © 2025 The lmnls authors

package cmd

import (
	"fmt"
	"os"

	"github.com/lmntal/lmnls/analysis"
	"github.com/lmntal/lmnls/diagnostic"
	"github.com/lmntal/lmnls/parser"
	"github.com/lmntal/lmnls/parser/token"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Check LMNtal source files and report diagnostics",
	Long: `Parse and analyze LMNtal source files, reporting syntax errors and
link linearity problems.

Every plain link must occur exactly twice within its terminal scope (the
program top level, or a whole rule). The checker reports links that occur
once ("Free link"), more than twice, or bare at the top level, annotating
the earlier occurrences of over-used links.

With no files, reads from stdin.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (unreadable files)

Examples:
  lmnls check file.lmn               Check a single file
  lmnls check a.lmn b.lmn            Check multiple files
  cat file.lmn | lmnls check         Check from stdin`,
	Run: func(_ *cobra.Command, args []string) {
		sources := make(map[string]string)

		read := func(path, display string) {
			src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
			if err != nil {
				fmt.Fprintf(os.Stderr, "lmnls check: %v\n", err)
				os.Exit(2)
			}
			sources[display] = string(src)
		}

		if len(args) == 0 {
			read("/dev/stdin", "<stdin>")
		} else {
			for _, path := range args {
				read(path, path)
			}
		}

		var all []diagnostic.Diagnostic
		for _, name := range orderedKeys(args, sources) {
			all = append(all, checkSource(name, sources[name])...)
		}
		if len(all) == 0 {
			return
		}

		r := &diagnostic.Renderer{
			Color: diagnostic.ParseColorMode(colorFlag),
			SourceReader: func(name string) ([]byte, error) {
				src, ok := sources[name]
				if !ok {
					return nil, fmt.Errorf("unknown source: %s", name)
				}
				return []byte(src), nil
			},
		}
		if err := r.RenderAll(os.Stderr, all); err != nil {
			fmt.Fprintf(os.Stderr, "lmnls check: %v\n", err)
			os.Exit(2)
		}
		os.Exit(1)
	},
}

// orderedKeys preserves the command line file order; stdin is the only
// entry when no files were given.
func orderedKeys(args []string, sources map[string]string) []string {
	if len(args) == 0 {
		return []string{"<stdin>"}
	}
	keys := make([]string, 0, len(args))
	seen := make(map[string]bool)
	for _, path := range args {
		if _, ok := sources[path]; ok && !seen[path] {
			keys = append(keys, path)
			seen[path] = true
		}
	}
	return keys
}

// checkSource parses and analyzes one source, converting its findings
// into renderable diagnostics.
func checkSource(name, src string) []diagnostic.Diagnostic {
	res := parser.Parse(name, src)
	var out []diagnostic.Diagnostic

	for _, e := range res.Errors {
		out = append(out, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Message:  e.Msg,
			Spans:    []diagnostic.Span{renderSpan(name, e.Span, "")},
		})
	}
	for _, w := range res.Warnings {
		out = append(out, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Message:  w.Msg,
			Spans:    []diagnostic.Span{renderSpan(name, w.Span, "")},
		})
	}

	for _, d := range analysis.Analyze(res.Program).Diagnostics {
		spans := []diagnostic.Span{renderSpan(name, d.Span, "")}
		for _, rel := range d.Related {
			spans = append(spans, renderSpan(name, rel.Span, rel.Message))
		}
		out = append(out, diagnostic.Diagnostic{
			Severity: mapCheckSeverity(d.Severity),
			Message:  d.Message,
			Spans:    spans,
		})
	}
	return out
}

// renderSpan converts a 0-based analysis span to the renderer's 1-based
// inclusive column convention.
func renderSpan(file string, s token.Span, label string) diagnostic.Span {
	span := diagnostic.Span{
		File:  file,
		Line:  s.Start.Line + 1,
		Col:   s.Start.Col + 1,
		Label: label,
	}
	if s.End.Line == s.Start.Line && s.End.Col > s.Start.Col {
		span.EndCol = s.End.Col // exclusive end == inclusive 1-based end
	}
	return span
}

func mapCheckSeverity(sev analysis.Severity) diagnostic.Severity {
	switch sev {
	case analysis.SeverityWarning:
		return diagnostic.SeverityWarning
	default:
		return diagnostic.SeverityError
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
