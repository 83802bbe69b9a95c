// Package globs holds the file-matcher patterns shared by fragment producers
// and the activation predicate that decides whether a path is covered by a
// list of patterns.
package globs

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	SrcExt = "{js,mjs,cjs,jsx,ts,mts,cts,tsx}"

	Src        = "**/*." + SrcExt
	JS         = "**/*.{js,mjs,cjs}"
	JSX        = "**/*.jsx"
	TS         = "**/*.{ts,mts,cts}"
	TSX        = "**/*.tsx"
	Style      = "**/*.{css,less,scss}"
	CSS        = "**/*.css"
	PostCSS    = "**/*.{pcss,postcss}"
	Less       = "**/*.less"
	SCSS       = "**/*.scss"
	JSON       = "**/*.json"
	JSON5      = "**/*.json5"
	JSONC      = "**/*.jsonc"
	Markdown   = "**/*.md"
	MarkdownIn = "**/*.md/*.*"
	Svelte     = "**/*.svelte"
	Vue        = "**/*.vue"
	YAML       = "**/*.{yaml,yml}"
	TOML       = "**/*.toml"
	XML        = "**/*.xml"
	SVG        = "**/*.svg"
	HTML       = "**/*.{htm,html}"
	Astro      = "**/*.astro"
	AstroTS    = "**/*.astro/*.ts"
	GraphQL    = "**/*.{gql,graphql}"

	MarkdownCode = "**/*.md/**/*." + SrcExt
)

// Tests matches the usual test and spec file layouts.
var Tests = []string{
	"**/__tests__/**/*." + SrcExt,
	"**/*.spec." + SrcExt,
	"**/*.test." + SrcExt,
	"**/*.bench." + SrcExt,
	"**/*.benchmark." + SrcExt,
}

// AllSources lists every file kind at least one producer can lint.
var AllSources = []string{
	Src, Style, JSON, JSON5, Markdown, Svelte, Vue, YAML, XML, HTML,
}

// Exclude is the default set of global ignores.
var Exclude = []string{
	"**/node_modules",
	"**/dist",
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/bun.lockb",
	"**/output",
	"**/coverage",
	"**/temp",
	"**/.temp",
	"**/tmp",
	"**/.tmp",
	"**/.history",
	"**/.vitepress/cache",
	"**/.nuxt",
	"**/.next",
	"**/.svelte-kit",
	"**/.vercel",
	"**/.changeset",
	"**/.idea",
	"**/.cache",
	"**/.output",
	"**/.vite-inspect",
	"**/.yarn",
	"**/vite.config.*.timestamp-*",
	"**/CHANGELOG*.md",
	"**/*.min.*",
	"**/LICENSE*",
	"**/__snapshots__",
	"**/auto-import.d.ts",
	"**/auto-imports.d.ts",
	"**/components.d.ts",
}

// FormatterOwned are the file kinds handed to formatter-only fragments. Code
// rules that would fight the formatter are switched off for them.
var FormatterOwned = []string{
	CSS, PostCSS, Less, SCSS, HTML, Markdown, GraphQL, XML, SVG,
}

// Valid reports whether pattern is a well-formed glob.
func Valid(pattern string) bool {
	return doublestar.ValidatePattern(strings.TrimPrefix(pattern, "!"))
}

// Match reports whether name matches pattern. A pattern without a slash is
// matched against the base name, like flat config does for bare globs.
func Match(pattern, name string) bool {
	name = clean(name)
	if !strings.Contains(pattern, "/") {
		ok, _ := doublestar.Match(pattern, path.Base(name))
		return ok
	}
	ok, _ := doublestar.Match(strings.TrimPrefix(pattern, "./"), name)
	return ok
}

// Any reports whether name matches at least one pattern.
func Any(patterns []string, name string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}

// Ignored applies an ignore list to name. A pattern ignores a path when it
// matches the path itself or one of its parent directories. Patterns
// starting with "!" re-include what an earlier pattern excluded; the last
// matching pattern decides.
func Ignored(patterns []string, name string) bool {
	name = clean(name)
	candidates := ancestors(name)
	ignored := false
	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		for _, c := range candidates {
			if Match(p, c) {
				ignored = !negate
				break
			}
		}
	}
	return ignored
}

func clean(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean(name)
	return strings.TrimPrefix(name, "./")
}

// ancestors returns name followed by each parent directory, nearest first.
func ancestors(name string) []string {
	out := []string{name}
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		out = append(out, dir)
	}
	return out
}
