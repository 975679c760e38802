package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	t.Parallel()

	var lines []string
	err := RunScript(strings.NewReader("move 1 2\n\n  # comment\n wait 100 \n"), func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"move 1 2", "wait 100"}, lines)
}
