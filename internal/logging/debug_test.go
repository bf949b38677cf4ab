package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	assert.True(t, DebugEnabled())
	Debugf("loaded %d tasks from %s", 3, "tasks.dat")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "loaded 3 tasks from tasks.dat\n"))
}

func TestDebugfDisabled(t *testing.T) {
	SetOutput(nil)

	assert.False(t, DebugEnabled())
	assert.NotPanics(t, func() { Debugf("nothing %s", "here") })
}
