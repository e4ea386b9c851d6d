package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/unbound-force/vouch/internal/check"
	"github.com/unbound-force/vouch/internal/runner"
)

// WriteText writes a run result as human-readable styled text to the
// writer. Output uses lipgloss for color and formatting when the
// output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, res *runner.Result) error {
	s := DefaultStyles()

	byFile := groupByFile(res.Findings)
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for i, file := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeOneFile(w, file, byFile[file], s)
	}

	if len(res.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Muted.Render("Skipped units:"))
		for _, ue := range res.Errors {
			fmt.Fprintf(w, "    - %s: %s\n", ue.Path, ue.Message)
		}
	}

	// Summary line.
	fmt.Fprintf(w, "\n%s\n", summaryLine(res, s))
	return nil
}

func writeOneFile(w io.Writer, file string, findings []check.Finding, s Styles) {
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", file)))
	for _, f := range findings {
		fmt.Fprintf(w, "    %s  %s\n",
			s.Location.Render(fmt.Sprintf("%d:%d", f.Line, f.Col)),
			f.Test)
		fmt.Fprintf(w, "        %s\n", s.Finding.Render(f.Message))
	}
}

func summaryLine(res *runner.Result, s Styles) string {
	counts := fmt.Sprintf("%d unit(s) analyzed, %d finding(s)",
		res.Units, len(res.Findings))
	if len(res.Errors) > 0 {
		counts += fmt.Sprintf(", %d unit(s) skipped", len(res.Errors))
	}
	if len(res.Findings) == 0 {
		return s.Pass.Render(counts)
	}
	return s.Fail.Render(counts)
}

func groupByFile(findings []check.Finding) map[string][]check.Finding {
	byFile := make(map[string][]check.Finding)
	for _, f := range findings {
		byFile[f.File] = append(byFile[f.File], f)
	}
	return byFile
}
