package txcategory

// Decode-shape normalization for the optional-tuple result of get-category.
//
// Different versions of the contract-call decoding layer render an
// "optional tuple" in different ways: the none marker may be tagged "none",
// "optionalNone", or "optional" with a null value; a present value may be
// tagged "some", "optionalSome", or "optional"; the tuple's fields may sit
// under "value" or "data", nested one or two levels deep; and the category
// field itself may be a typed node ({"type": "string-utf8", "value": ...}) or
// the bare decoded string. normalizeCategory pattern-matches every known
// shape into a plain label, and treats anything unrecognized as absent:
// this is a read-only convenience path, so ambiguity degrades to "no
// category" instead of an error.

// asMap narrows an any to the generic JSON object shape.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// isNoneShape reports whether the node is one of the known "absent" markers.
func isNoneShape(node map[string]any, tag string) bool {
	switch tag {
	case "none", "optionalNone":
		return true
	case "optional":
		return node["value"] == nil
	default:
		return false
	}
}

// unwrapTuple digs through the generic wrappers covering the tuple fields:
// {"value": {...}}, {"data": {...}}, or the fields directly.
func unwrapTuple(optValue map[string]any) (map[string]any, bool) {
	if inner, ok := asMap(optValue["value"]); ok {
		return inner, true
	}
	if inner, ok := asMap(optValue["data"]); ok {
		return inner, true
	}
	return optValue, true
}

// categoryField locates the "category" entry, looking one extra level under
// "data" for decoders that wrap tuple fields twice.
func categoryField(tuple map[string]any) (any, bool) {
	if node, ok := tuple["category"]; ok {
		return node, true
	}
	if data, ok := asMap(tuple["data"]); ok {
		if node, ok := data["category"]; ok {
			return node, true
		}
	}
	return nil, false
}

// normalizeCategory extracts the category label from a decoded optional-tuple
// result. The second return is false when the value is absent or the shape is
// not recognized.
func normalizeCategory(node map[string]any) (string, bool) {
	tag, _ := node["type"].(string)
	if tag == "" {
		return "", false
	}
	if isNoneShape(node, tag) {
		return "", false
	}

	// A present optional usually nests its payload under "value"; some
	// decoders put the tuple at the top level instead.
	optValue := node
	if inner, ok := asMap(node["value"]); ok {
		optValue = inner
	}

	tuple, _ := unwrapTuple(optValue)
	field, ok := categoryField(tuple)
	if !ok {
		return "", false
	}

	switch v := field.(type) {
	case string:
		// bare decoded text
		return v, true
	case map[string]any:
		label, isString := v["value"].(string)
		if !isString {
			return "", false
		}
		if fieldTag, hasTag := v["type"].(string); hasTag && fieldTag != "string-utf8" && fieldTag != "string-ascii" {
			return "", false
		}
		return label, true
	default:
		return "", false
	}
}
