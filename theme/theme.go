// Package theme holds the site's design tokens and renders them as CSS
// custom properties plus the "skin" utility classes templates use.
package theme

import (
	"fmt"
	"strings"
)

// SmallScreen is the single responsive breakpoint.
const SmallScreen = "640px"

// RGB is a colour stored as the bare "r, g, b" triple expected inside
// rgb(var(--x)).
type RGB [3]uint8

func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c[0], c[1], c[2])
}

// Palette is one colour scheme.
type Palette struct {
	Fill      RGB
	TextBase  RGB
	Accent    RGB
	Card      RGB
	CardMuted RGB
	Border    RGB
}

// LightPalette is the default light scheme.
var LightPalette = Palette{
	Fill:      RGB{251, 254, 251},
	TextBase:  RGB{40, 39, 40},
	Accent:    RGB{0, 108, 172},
	Card:      RGB{230, 230, 230},
	CardMuted: RGB{205, 205, 205},
	Border:    RGB{236, 233, 233},
}

// DarkPalette is the default dark scheme.
var DarkPalette = Palette{
	Fill:      RGB{33, 39, 55},
	TextBase:  RGB{234, 237, 243},
	Accent:    RGB{255, 107, 1},
	Card:      RGB{52, 63, 96},
	CardMuted: RGB{138, 51, 2},
	Border:    RGB{171, 75, 8},
}

func (p Palette) vars() [][2]string {
	return [][2]string{
		{"--color-fill", p.Fill.String()},
		{"--color-text-base", p.TextBase.String()},
		{"--color-accent", p.Accent.String()},
		{"--color-card", p.Card.String()},
		{"--color-card-muted", p.CardMuted.String()},
		{"--color-border", p.Border.String()},
	}
}

// Skin maps a utility class to the CSS property and colour variable it sets.
type Skin struct {
	Class    string
	Property string
	Variable string
}

// Skins are the colour utilities, e.g. .text-skin-base and .bg-skin-card.
var Skins = []Skin{
	{"text-skin-base", "color", "--color-text-base"},
	{"text-skin-accent", "color", "--color-accent"},
	{"text-skin-inverted", "color", "--color-fill"},
	{"bg-skin-fill", "background-color", "--color-fill"},
	{"bg-skin-accent", "background-color", "--color-accent"},
	{"bg-skin-inverted", "background-color", "--color-text-base"},
	{"bg-skin-card", "background-color", "--color-card"},
	{"bg-skin-card-muted", "background-color", "--color-card-muted"},
	{"outline-skin-fill", "outline-color", "--color-accent"},
	{"border-skin-line", "border-color", "--color-border"},
	{"border-skin-fill", "border-color", "--color-text-base"},
	{"border-skin-accent", "border-color", "--color-accent"},
	{"fill-skin-base", "fill", "--color-text-base"},
	{"fill-skin-accent", "fill", "--color-accent"},
}

// Fonts are the font-family stacks.
var Fonts = map[string][]string{
	"mono":  {"IBM Plex Mono", "Consolas", "monospace"},
	"sans":  {"Inter", "-apple-system", "BlinkMacSystemFont", "Segoe UI", "Roboto", "Helvetica Neue", "Arial", "sans-serif"},
	"serif": {"Merriweather", "Georgia", "Cambria", "serif"},
}

// Theme bundles the light and dark palettes. Dark is applied when the
// document carries data-theme="dark".
type Theme struct {
	Light Palette
	Dark  Palette
	// DarkMode disables the dark palette entirely when false.
	DarkMode bool
}

// Default returns the stock theme with light and dark schemes.
func Default() Theme {
	return Theme{Light: LightPalette, Dark: DarkPalette, DarkMode: true}
}

// WithOpacity returns the CSS colour expression for variable. A negative
// opacity means "opaque" and yields rgb(var(x)).
func WithOpacity(variable string, opacity float64) string {
	if opacity < 0 {
		return fmt.Sprintf("rgb(var(%s))", variable)
	}
	return fmt.Sprintf("rgba(var(%s), %g)", variable, opacity)
}

// CSS renders the stylesheet served at /theme.css.
func (t Theme) CSS() string {
	var b strings.Builder
	writeVars(&b, `:root, html[data-theme="light"]`, t.Light)
	if t.DarkMode {
		writeVars(&b, `html[data-theme="dark"]`, t.Dark)
	}

	for _, s := range Skins {
		fmt.Fprintf(&b, ".%s { %s: %s; }\n", s.Class, s.Property, WithOpacity(s.Variable, -1))
	}
	b.WriteString(".fill-transparent { fill: transparent; }\n")

	for _, name := range []string{"mono", "sans", "serif"} {
		fmt.Fprintf(&b, ".font-%s { font-family: %s; }\n", name, fontStack(Fonts[name]))
	}

	b.WriteString(".prose { font-size: 1.125rem; line-height: 1.75; letter-spacing: 0.01em; }\n")
	b.WriteString(".prose p { margin-top: 1.25em; margin-bottom: 1.25em; }\n")
	fmt.Fprintf(&b, "@media (min-width: %s) { .sm\\:container { max-width: %s; } }\n", SmallScreen, SmallScreen)
	return b.String()
}

func writeVars(b *strings.Builder, selector string, p Palette) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, kv := range p.vars() {
		fmt.Fprintf(b, "  %s: %s;\n", kv[0], kv[1])
	}
	b.WriteString("}\n")
}

func fontStack(families []string) string {
	out := make([]string, len(families))
	for i, f := range families {
		if strings.ContainsAny(f, " ") {
			out[i] = fmt.Sprintf("%q", f)
		} else {
			out[i] = f
		}
	}
	return strings.Join(out, ", ")
}
