package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithOpacity(t *testing.T) {
	assert.Equal(t, "rgb(var(--color-accent))", WithOpacity("--color-accent", -1))
	assert.Equal(t, "rgba(var(--color-accent), 0.5)", WithOpacity("--color-accent", 0.5))
	assert.Equal(t, "rgba(var(--color-fill), 0)", WithOpacity("--color-fill", 0))
}

func TestCSSDeclaresPalettes(t *testing.T) {
	css := Default().CSS()

	assert.Contains(t, css, `:root, html[data-theme="light"] {`)
	assert.Contains(t, css, "--color-fill: 251, 254, 251;")
	assert.Contains(t, css, `html[data-theme="dark"] {`)
	assert.Contains(t, css, "--color-accent: 255, 107, 1;")
	assert.Contains(t, css, ".bg-skin-card-muted { background-color: rgb(var(--color-card-muted)); }")
	assert.Contains(t, css, `.font-mono { font-family: "IBM Plex Mono", Consolas, monospace; }`)
}

func TestCSSWithoutDarkMode(t *testing.T) {
	th := Default()
	th.DarkMode = false
	css := th.CSS()

	assert.False(t, strings.Contains(css, `data-theme="dark"`))
	assert.Contains(t, css, ".text-skin-base { color: rgb(var(--color-text-base)); }")
}
