package genpasswords

import (
	"bufio"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/charset"
)

func TestGenerateEmitsExactlyNPasswordsOfLengthC(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(context.Background(), 4, 3, 1, &buf))

	lines := splitLines(t, &buf)
	require.Len(t, lines, 3)
	for _, l := range lines {
		require.Len(t, l, 4)
		for i := 0; i < len(l); i++ {
			assert.True(t, charset.Contains(l[i]))
		}
	}
}

func TestGenerateWithMoreWorkersThanPasswords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(context.Background(), 5, 3, 10, &buf))

	lines := splitLines(t, &buf)
	assert.Len(t, lines, 3)
}

func TestGenerateRejectsZeroThreads(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(context.Background(), 4, 3, 0, &buf)
	assert.Error(t, err)
}

func splitLines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}
