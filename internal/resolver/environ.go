// Where: internal/resolver/environ.go
// What: Explicit mutable environment mapping.
// Why: The apply phase runs over a value, not the live OS table, so resolution stays testable.
package resolver

import (
	"os"
	"sort"
	"strings"
)

// Environ is a process environment as a plain mapping. The resolver
// mutates an Environ value and the caller syncs it back to the OS once,
// after the pipeline finishes.
type Environ map[string]string

// OSEnviron snapshots the current process environment.
func OSEnviron() Environ {
	env := Environ{}
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			env[key] = value
		}
	}
	return env
}

// Clone returns an independent copy.
func (e Environ) Clone() Environ {
	copied := make(Environ, len(e))
	for k, v := range e {
		copied[k] = v
	}
	return copied
}

// Expand substitutes $VAR and ${VAR} references against this environment.
// A reference to a variable not present in the mapping is kept verbatim,
// never blanked: unsubstituted placeholder tokens survive the apply phase
// unchanged.
func (e Environ) Expand(value string) string {
	var out strings.Builder
	for i := 0; i < len(value); {
		if value[i] != '$' || i+1 == len(value) {
			out.WriteByte(value[i])
			i++
			continue
		}

		if value[i+1] == '{' {
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				out.WriteString(value[i:])
				break
			}
			name := value[i+2 : i+2+end]
			if resolved, ok := e[name]; ok {
				out.WriteString(resolved)
			} else {
				out.WriteString(value[i : i+3+end])
			}
			i += 3 + end
			continue
		}

		j := i + 1
		for j < len(value) && isNameByte(value[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte('$')
			i++
			continue
		}
		if resolved, ok := e[value[i+1:j]]; ok {
			out.WriteString(resolved)
		} else {
			out.WriteString(value[i:j])
		}
		i = j
	}
	return out.String()
}

func isNameByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// Keys returns the variable names in sorted order.
func (e Environ) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sync writes the named variables back to the OS environment.
func (e Environ) Sync(keys []string) error {
	for _, key := range keys {
		if err := os.Setenv(key, e[key]); err != nil {
			return err
		}
	}
	return nil
}
