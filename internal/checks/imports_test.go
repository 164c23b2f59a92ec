package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-io/spiguard/contract"
)

func TestImportsCleanFile(t *testing.T) {
	snap := scanTree(t, map[string]string{
		"a.go": `package a

import (
	"context"
	"io"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/spi/storage"
)

var _ = context.Background
var _ io.Reader
var _ contract.Finding
var _ storage.BlobInfo
`,
	})

	assert.Empty(t, runCheck(t, Imports{}, paramsFor(snap)))
}

func TestImportsFindings(t *testing.T) {
	snap := scanTree(t, map[string]string{
		"a.go": `package a

import (
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	. "strings"

	"github.com/calder-io/spiguard/internal/checks"
	"github.com/some/vendor"
)

var _ = fmt.Sprint
var _ = checks.NameDupes
var _ = vendor.Thing
var _ = Title
`,
	})

	findings := runCheck(t, Imports{}, paramsFor(snap))
	require.Len(t, findings, 4)

	byMessage := map[string]contract.Finding{}
	for _, f := range findings {
		byMessage[f.Message] = f
	}

	blank, ok := byMessage[`blank import of "github.com/mattn/go-sqlite3" has no place in a declaration file`]
	require.True(t, ok)
	assert.Equal(t, contract.SeverityWarning, blank.Severity)
	assert.True(t, blank.Fixable)

	dot, ok := byMessage[`dot import of "strings"`]
	require.True(t, ok)
	assert.Equal(t, contract.SeverityError, dot.Severity)

	banned, ok := byMessage[`import "github.com/calder-io/spiguard/internal/checks" is banned (prefix github.com/calder-io/spiguard/internal)`]
	require.True(t, ok)
	assert.Equal(t, contract.SeverityError, banned.Severity)

	external, ok := byMessage[`import "github.com/some/vendor" is outside the declaration surface`]
	require.True(t, ok)
	assert.Equal(t, contract.SeverityError, external.Severity)
}

func TestImportsFixRemovesBlankImports(t *testing.T) {
	snap := scanTree(t, map[string]string{
		"a.go": `package a

import (
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var _ = fmt.Sprint
`,
	})

	fixed, changed, err := Imports{}.FixFile(snap.Files[0], paramsFor(snap))
	require.NoError(t, err)
	require.True(t, changed)

	out := string(fixed)
	assert.NotContains(t, out, "go-sqlite3")
	assert.Contains(t, out, `"fmt"`)

	refixed := rescan(t, fixed)
	assert.Empty(t, runCheck(t, Imports{}, paramsFor(refixed)))
}

func TestImportsFixNoChange(t *testing.T) {
	snap := scanTree(t, map[string]string{
		"a.go": "package a\n\nimport \"fmt\"\n\nvar _ = fmt.Sprint\n",
	})

	_, changed, err := Imports{}.FixFile(snap.Files[0], paramsFor(snap))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestIsExternal(t *testing.T) {
	assert.False(t, isExternal("context"))
	assert.False(t, isExternal("go/ast"))
	assert.True(t, isExternal("github.com/google/uuid"))
	assert.True(t, isExternal("gopkg.in/yaml.v3"))
}
