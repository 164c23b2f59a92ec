package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spdxFile = `// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The Calder Authors

// Package a holds declarations.
package a

type Pinger interface {
	Ping() error
}
`

func TestHeadersFlagsSPDX(t *testing.T) {
	snap := scanTree(t, map[string]string{"a.go": spdxFile})

	findings := runCheck(t, Headers{}, paramsFor(snap))
	require.Len(t, findings, 1)
	assert.Equal(t, 1, findings[0].Line)
	assert.Contains(t, findings[0].Message, "SPDX-License-Identifier")
	assert.True(t, findings[0].Fixable)
}

func TestHeadersCustomPatterns(t *testing.T) {
	snap := scanTree(t, map[string]string{"a.go": spdxFile})

	p := paramsFor(snap)
	p.Policy.HeaderPatterns = append(p.Policy.HeaderPatterns, "Copyright")

	findings := runCheck(t, Headers{}, p)
	assert.Len(t, findings, 2)
}

func TestHeadersIgnoresBodyMentions(t *testing.T) {
	snap := scanTree(t, map[string]string{
		"a.go": `package a

// SPDX-License-Identifier shows up in a doc comment below the package
// clause; only leading headers are banned.
type Pinger interface {
	Ping() error
}
`,
	})

	assert.Empty(t, runCheck(t, Headers{}, paramsFor(snap)))
}

func TestHeadersFixStripsMatchingLines(t *testing.T) {
	snap := scanTree(t, map[string]string{"a.go": spdxFile})

	fixed, changed, err := Headers{}.FixFile(snap.Files[0], paramsFor(snap))
	require.NoError(t, err)
	require.True(t, changed)

	out := string(fixed)
	assert.NotContains(t, out, "SPDX-License-Identifier")
	assert.Contains(t, out, "// Copyright 2024", "non-matching lines stay")
	assert.Contains(t, out, "// Package a holds declarations.")

	refixed := rescan(t, fixed)
	assert.Empty(t, runCheck(t, Headers{}, paramsFor(refixed)))
}

func TestHeadersFixPreservesBuildTags(t *testing.T) {
	src := strings.Join([]string{
		"// SPDX-License-Identifier: MIT",
		"",
		"//go:build linux",
		"",
		"package a",
		"",
	}, "\n")
	snap := scanTree(t, map[string]string{"a.go": src})

	fixed, changed, err := Headers{}.FixFile(snap.Files[0], paramsFor(snap))
	require.NoError(t, err)
	require.True(t, changed)
	assert.Contains(t, string(fixed), "//go:build linux")
	assert.NotContains(t, string(fixed), "SPDX")
}
