package core

import (
	"bytes"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(prefix string, debug bool) (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := NewDefaultLogger(prefix, debug)
	l.out = log.New(&out, "", 0)
	l.err = log.New(&errOut, "", 0)
	return l, &out, &errOut
}

func TestDefaultLoggerLevels(t *testing.T) {
	l, out, errOut := newBufferedLogger("input", false)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	require.True(t, l.DebugEnabled())
	l.Debugf("pool grew to %d", 3)
	assert.Contains(t, out.String(), "[input] DEBUG: pool grew to 3")

	l.Infof("ready")
	assert.Contains(t, out.String(), "[input] INFO: ready")

	l.Warnf("slow")
	l.Errorf("boom")
	assert.Contains(t, errOut.String(), "[input] WARN: slow")
	assert.Contains(t, errOut.String(), "[input] ERROR: boom")
}

func TestDefaultLoggerNoPrefix(t *testing.T) {
	l, out, _ := newBufferedLogger("", false)
	l.Infof("hello %s", "world")
	assert.Equal(t, "INFO: hello world\n", out.String())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("ignored")
}

func TestTransformMatrixRoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	back := TransformFromMatrix(tr.GetMatrix())
	assert.True(t, back.Position.ApproxEqualThreshold(tr.Position, 1e-5))
	assert.True(t, back.Scale.ApproxEqualThreshold(tr.Scale, 1e-5))
	assert.True(t, back.GetMatrix().ApproxEqualThreshold(tr.GetMatrix(), 1e-4))
}

func TestTransformForward(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, tr.GetForward())
}

func TestColorArray(t *testing.T) {
	c := ColorFromArray([4]float32{1, 0.5, 0.25, 0.125})
	assert.Equal(t, Color{R: 1, G: 0.5, B: 0.25, A: 0.125}, c)
	assert.Equal(t, [4]float32{1, 0.5, 0.25, 0.125}, c.Array())
}
