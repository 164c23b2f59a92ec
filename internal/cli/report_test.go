package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/calder-io/spiguard/contract"
)

func TestRenderTextReportClean(t *testing.T) {
	var buf bytes.Buffer
	renderTextReport(&buf, contract.CheckResult{
		Root:         "./spi",
		FilesScanned: 7,
		Passed:       true,
	})
	assert.Equal(t, "✓ ./spi: 7 file(s) clean\n", buf.String())
}

func TestRenderTextReportFindings(t *testing.T) {
	res := contract.CheckResult{
		SchemaVersion: contract.SchemaVersion,
		RunID:         "fixed-run",
		Check:         "dupes,headers,imports,order,stubs",
		Root:          "./spi",
		FilesScanned:  3,
		Findings: []contract.Finding{
			{
				Check:    "dupes",
				Severity: contract.SeverityError,
				File:     "blob.go",
				Line:     5,
				Message:  "interface ObjectReader duplicates BlobReader (blob.go:5); 2 declarations share this signature",
			},
			{
				Check:    "headers",
				Severity: contract.SeverityWarning,
				File:     "blob.go",
				Line:     1,
				Message:  `banned header pattern "SPDX-License-Identifier"`,
				Fixable:  true,
			},
			{
				Check:    "order",
				Severity: contract.SeverityWarning,
				File:     "kv.go",
				Line:     8,
				Message:  "interface KV methods are not sorted",
				Fixable:  true,
			},
		},
		Counts: contract.SeverityCounts{Error: 1, Warning: 2},
		Passed: false,
	}

	var buf bytes.Buffer
	renderTextReport(&buf, res)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "check_report", buf.Bytes())
}
