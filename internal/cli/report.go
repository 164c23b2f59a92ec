package cli

import (
	"fmt"
	"io"

	"github.com/calder-io/spiguard/contract"
)

// renderTextReport writes the human-readable form of a check result.
func renderTextReport(w io.Writer, res contract.CheckResult) {
	if res.Passed && len(res.Findings) == 0 {
		fmt.Fprintf(w, "✓ %s: %d file(s) clean\n", res.Root, res.FilesScanned)
		return
	}

	for _, f := range res.Findings {
		marker := ""
		if f.Fixable {
			marker = " [fixable]"
		}
		fmt.Fprintf(w, "%s:%d: %s: %s: %s%s\n", f.File, f.Line, f.Severity, f.Check, f.Message, marker)
	}

	fmt.Fprintln(w)
	status := "✓ passed"
	if !res.Passed {
		status = "✗ failed"
	}
	fmt.Fprintf(w, "%s: %d error(s), %d warning(s), %d info in %d file(s)\n",
		status, res.Counts.Error, res.Counts.Warning, res.Counts.Info, res.FilesScanned)
}

// emitReport writes the report in the configured format and converts a
// failed verdict into the exit-1 error.
func emitReport(f *OutputFormatter, res contract.CheckResult) error {
	if f.Format == "json" {
		if err := f.JSON(Response{Status: "ok", Data: res}); err != nil {
			return err
		}
	} else {
		renderTextReport(f.Writer, res)
	}

	if !res.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%d finding(s)", res.Counts.Total()))
	}
	return nil
}
