//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap turns a request DTO into its JSON map so tests can send payloads the
// typed struct cannot express, such as missing or mistyped fields.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, f := range muts {
		f(m)
	}
	return m
}

// Field sets or, when value is nil, deletes a field. Dotted paths reach into
// nested objects and arrays, e.g. "passengers.0.documentNumber".
func Field(path string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		keys := strings.Split(path, ".")
		parent := walk(m, keys[:len(keys)-1])
		last := keys[len(keys)-1]

		switch p := parent.(type) {
		case map[string]any:
			if value == nil {
				delete(p, last)
			} else {
				p[last] = value
			}
		case []any:
			if i, err := strconv.Atoi(last); err == nil && i < len(p) {
				p[i] = value
			}
		}
	}
}

func walk(node any, keys []string) any {
	for _, k := range keys {
		switch n := node.(type) {
		case map[string]any:
			node = n[k]
		case []any:
			i, err := strconv.Atoi(k)
			if err != nil || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}
