package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startKoch(t *testing.T) string {
	t.Helper()
	var out, errOut bytes.Buffer
	require.NoError(t, RunStepStart(&out, &errOut, kochSource(), DefaultCanvas(), defaultMaxLength, false))
	return out.String()
}

func stepForward(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStepForward(&buf, n))
	return buf.String()
}

func stepBack(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStepBack(&buf, n))
	return buf.String()
}

func stepShow(t *testing.T, output string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStepShow(&buf, output))
	return buf.String()
}

func TestStep_StartAtZero(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := startKoch(t)
	assert.Contains(t, out, "Step: 0/9 (Next: 'F')")
}

func TestStep_RequiresWorkspace(t *testing.T) {
	inTempDir(t)

	var out, errOut bytes.Buffer
	err := RunStepStart(&out, &errOut, kochSource(), DefaultCanvas(), defaultMaxLength, false)
	assert.EqualError(t, err, "run `lsys init` first")
}

func TestStep_RequiresSession(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunStepForward(&buf, 1)
	assert.EqualError(t, err, "no stepping session: run `lsys step start` first")
}

func TestStep_ForwardPersistsCursor(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)

	out := stepForward(t, 1)
	assert.Contains(t, out, "(500.00, 350.00) -> (510.00, 350.00)")
	assert.Contains(t, out, "Step: 1/9 (Next: '+')")

	out = stepForward(t, 1)
	assert.NotContains(t, out, "->")
	assert.Contains(t, out, "Step: 2/9 (Next: 'F')")

	out = stepShow(t, "")
	assert.Contains(t, out, "Step: 2/9 (Next: 'F')")
	assert.Contains(t, out, "1 segments drawn")
}

func TestStep_ForwardStopsAtEnd(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)

	out := stepForward(t, 100)
	assert.Equal(t, 5, strings.Count(out, "->"))
	assert.Contains(t, out, "Step: 9/9 (Done)")

	out = stepForward(t, 1)
	assert.Contains(t, out, "Step: 9/9 (Done)")
}

func TestStep_BackReplays(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)
	stepForward(t, 5)

	out := stepBack(t, 2)
	assert.Contains(t, out, "Step: 3/9 (Next: '-')")

	out = stepShow(t, "")
	assert.Contains(t, out, "2 segments drawn")

	// Stepping forward again redraws the same segment.
	out = stepForward(t, 2)
	assert.Contains(t, out, "(510.00, 360.00) -> (520.00, 360.00)")
}

func TestStep_BackAtZeroIsNoOp(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)

	out := stepBack(t, 3)
	assert.Contains(t, out, "Step: 0/9 (Next: 'F')")
}

func TestStep_Clear(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)
	stepForward(t, 4)

	var buf bytes.Buffer
	require.NoError(t, RunStepClear(&buf))
	assert.Contains(t, buf.String(), "Step: 0/9 (Next: 'F')")

	out := stepShow(t, "")
	assert.Contains(t, out, "0 segments drawn")
}

func TestStep_ShowRendersCanvas(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)
	stepForward(t, 3)

	out := stepShow(t, "step.svg")
	assert.Contains(t, out, "step.svg (2 segments)")

	data, err := os.ReadFile("step.svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), `width="1000" height="700"`)
	assert.Equal(t, 2, strings.Count(string(data), "<line "))
}

func TestStep_StartReplacesSession(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)
	stepForward(t, 4)

	src := kochSource()
	src.Overrides.Iterations = ptr(0)
	var out, errOut bytes.Buffer
	require.NoError(t, RunStepStart(&out, &errOut, src, DefaultCanvas(), defaultMaxLength, false))
	assert.Contains(t, out.String(), "Step: 0/1 (Next: 'F')")
}

func TestStep_Stop(t *testing.T) {
	inTempDir(t)
	runInit(t)
	startKoch(t)

	var buf bytes.Buffer
	require.NoError(t, RunStepStop(&buf))
	assert.Contains(t, buf.String(), "session discarded")

	err := RunStepForward(&buf, 1)
	assert.Error(t, err)
}

func TestStep_StartTooLarge(t *testing.T) {
	inTempDir(t)
	runInit(t)

	src := kochSource()
	src.Overrides.Iterations = ptr(3)
	var out, errOut bytes.Buffer
	err := RunStepStart(&out, &errOut, src, DefaultCanvas(), 100, false)
	assert.ErrorContains(t, err, "program too large")
}

func TestStepCount(t *testing.T) {
	n, err := stepCount(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = stepCount([]string{"12"})
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = stepCount([]string{"-1"})
	assert.EqualError(t, err, "invalid step count: -1")

	_, err = stepCount([]string{"x"})
	assert.Error(t, err)
}
