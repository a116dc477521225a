package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fourPlayerYAML = `name: four-player
arity: 2
placements: 3
matches:
  - key: semi-a
    stage: 0
    outcomes:
      - {match: final, slot: 0}
      - {match: bronze, slot: 0}
  - key: semi-b
    stage: 0
    outcomes:
      - {match: final, slot: 1}
      - {match: bronze, slot: 1}
  - key: final
    stage: 1
    outcomes:
      - {place: 0}
      - {place: 1}
  - key: bronze
    stage: 1
    outcomes:
      - {place: 2}
      - {discard: true}
`

// writeFixture writes content to name inside a fresh temp dir.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
