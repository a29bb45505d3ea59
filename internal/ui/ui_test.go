package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestSetThemeFallsBack(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("MONO")
	assert.Equal(t, "mono", Current().Name)
	SetTheme("does-not-exist")
	assert.Equal(t, "classic", Current().Name)
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"classic", "mono", "neon"}, ThemeNames())
}

func TestPanelContainsLines(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	var buf bytes.Buffer
	Panel(&buf, []string{"first", "second"})
	out := buf.String()
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Equal(t, 4, strings.Count(out, "\n"), "top border, two lines, bottom border")
}

func TestOKAndFail(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	assert.Equal(t, "ok: added\nerror: boom\n", buf.String())
}
