package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/PolarWolf314/ejgo/internal/document"
)

// EnvSection is the top-level member exported by Env.
const EnvSection = "environment"

// EnvOptions controls how variable names are written.
type EnvOptions struct {
	// TrimUnderscore strips one leading underscore from each name, so values
	// kept in plaintext with "_NAME" are exported as NAME.
	TrimUnderscore bool
}

// EnvVar is a single exported variable.
type EnvVar struct {
	Name  string
	Value string
}

// EnvVars returns the direct string members of section in document order.
// Nested objects and non-string values are skipped.
func EnvVars(section *document.Object, opts EnvOptions) []EnvVar {
	var vars []EnvVar
	for _, key := range section.Keys() {
		value, ok := section.String(key)
		if !ok {
			continue
		}
		name := key
		if opts.TrimUnderscore {
			name = strings.TrimPrefix(name, "_")
		}
		vars = append(vars, EnvVar{Name: name, Value: value})
	}
	return vars
}

// Env writes one "export NAME=VALUE" line per variable with VALUE shell
// quoted.
func Env(w io.Writer, vars []EnvVar) error {
	for _, v := range vars {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", v.Name, ShellQuote(v.Value)); err != nil {
			return err
		}
	}
	return nil
}

// ShellQuote returns s in a form a POSIX shell reads back as the literal
// string s. Strings made only of safe characters are returned as is, the
// empty string becomes '' and everything else is single quoted.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`'\''`)
		case '!':
			// History expansion still applies inside single quotes in
			// interactive bash.
			b.WriteString(`'\!'`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_=/,.+", r):
		default:
			return false
		}
	}
	return true
}
