// Package patterns provides shared regex patterns and helper functions for
// boarding-pass text parsing. This file contains the grok-style pattern
// compiler used by the table-row lexer rules.

package patterns

import (
	"regexp"
	"strings"
)

// Format represents a text layout with named capture groups.
type Format struct {
	Name     string         // Format name for identification.
	Pattern  string         // Pattern with {PLACEHOLDER} syntax.
	Compiled *regexp.Regexp // Compiled regex (populated by Compile).
}

// Compiler manages pattern compilation and matching for a set of formats.
// Formats are tried in declaration order, so higher-specificity layouts must
// come first.
type Compiler struct {
	basePatterns map[string]string
	formats      []Format
}

// NewCompiler creates a compiler over the given formats. Local patterns
// overlay the global BasePatterns and may override them.
func NewCompiler(formats []Format, localPatterns map[string]string) *Compiler {
	c := &Compiler{
		basePatterns: make(map[string]string, len(BasePatterns)+len(localPatterns)),
		formats:      make([]Format, len(formats)),
	}
	for k, v := range BasePatterns {
		c.basePatterns[k] = v
	}
	for k, v := range localPatterns {
		c.basePatterns[k] = v
	}
	copy(c.formats, formats)
	return c
}

// Compile expands all {PLACEHOLDER} references and compiles the regexes.
func (c *Compiler) Compile() error {
	for i := range c.formats {
		re, err := regexp.Compile(c.expand(c.formats[i].Pattern))
		if err != nil {
			return err
		}
		c.formats[i].Compiled = re
	}
	return nil
}

// expand replaces {PLACEHOLDER} with the actual regex fragments.
func (c *Compiler) expand(pattern string) string {
	result := pattern
	for name, regex := range c.basePatterns {
		result = strings.ReplaceAll(result, "{"+name+"}", regex)
	}
	return result
}

// Match represents a successful format match with extracted fields.
type Match struct {
	FormatName string
	Captures   map[string]string
	Position   int // Byte offset of the match in the input text.
}

// Parse tries each format in order and returns the first match, or nil.
func (c *Compiler) Parse(text string) *Match {
	for _, format := range c.formats {
		if format.Compiled == nil {
			continue
		}
		loc := format.Compiled.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		return &Match{
			FormatName: format.Name,
			Captures:   captureMap(format.Compiled, text, loc),
			Position:   loc[0],
		}
	}
	return nil
}

// ParseAll returns one match per format that matches. Useful when formats
// extract disjoint field sets from the same document.
func (c *Compiler) ParseAll(text string) []*Match {
	var results []*Match
	for _, format := range c.formats {
		if format.Compiled == nil {
			continue
		}
		loc := format.Compiled.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		results = append(results, &Match{
			FormatName: format.Name,
			Captures:   captureMap(format.Compiled, text, loc),
			Position:   loc[0],
		})
	}
	return results
}

// captureMap extracts named groups from a submatch index slice.
func captureMap(re *regexp.Regexp, text string, loc []int) map[string]string {
	caps := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		caps[name] = text[start:end]
	}
	return caps
}

// GetCapture safely reads a capture value with a default.
func (m *Match) GetCapture(name, defaultVal string) string {
	if m == nil {
		return defaultVal
	}
	if val, ok := m.Captures[name]; ok && val != "" {
		return val
	}
	return defaultVal
}
