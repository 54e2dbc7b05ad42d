package txcategory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	t.Run("recognized present shapes", func(t *testing.T) {
		shapes := map[string]map[string]any{
			"optional with tuple data and typed field": {
				"type": "optional",
				"value": map[string]any{
					"type": "tuple",
					"data": map[string]any{
						"category": map[string]any{"type": "string-utf8", "value": "Income"},
					},
				},
			},
			"optionalSome with tuple value and typed field": {
				"type": "optionalSome",
				"value": map[string]any{
					"type": "tuple",
					"value": map[string]any{
						"category": map[string]any{"type": "string-utf8", "value": "Income"},
					},
				},
			},
			"some with bare string field": {
				"type": "some",
				"value": map[string]any{
					"category": "Income",
				},
			},
			"some with untyped node value": {
				"type": "some",
				"value": map[string]any{
					"category": map[string]any{"value": "Income"},
				},
			},
			"double data nesting": {
				"type": "some",
				"value": map[string]any{
					"data": map[string]any{
						"category": map[string]any{"type": "string-utf8", "value": "Income"},
					},
				},
			},
		}

		for name, shape := range shapes {
			t.Run(name, func(t *testing.T) {
				label, found := normalizeCategory(shape)
				assert.True(t, found)
				assert.Equal(t, "Income", label)
			})
		}
	})

	t.Run("recognized absent shapes", func(t *testing.T) {
		shapes := map[string]map[string]any{
			"none":                       {"type": "none"},
			"optionalNone":               {"type": "optionalNone"},
			"optional with null value":   {"type": "optional", "value": nil},
			"optional with no value key": {"type": "optional"},
		}

		for name, shape := range shapes {
			t.Run(name, func(t *testing.T) {
				_, found := normalizeCategory(shape)
				assert.False(t, found)
			})
		}
	})

	t.Run("unrecognized shapes degrade to absent", func(t *testing.T) {
		shapes := map[string]map[string]any{
			"no type tag":          {"value": "Income"},
			"missing category":     {"type": "some", "value": map[string]any{"note": "x"}},
			"category not a label": {"type": "some", "value": map[string]any{"category": 7}},
			"typed field of wrong type": {
				"type": "some",
				"value": map[string]any{
					"category": map[string]any{"type": "uint", "value": "7"},
				},
			},
			"typed field with non-string value": {
				"type": "some",
				"value": map[string]any{
					"category": map[string]any{"type": "string-utf8", "value": 7},
				},
			},
		}

		for name, shape := range shapes {
			t.Run(name, func(t *testing.T) {
				_, found := normalizeCategory(shape)
				assert.False(t, found, "shape should not yield a label")
			})
		}
	})
}
