package generator

// A shape is one recognized way the service can hand back generated
// text: a named field holding either a string or a list whose first
// element is a string. Shapes are tried in order and the first match
// wins, so adding support for a new response layout means appending
// here, not touching call logic.
type shape struct {
	key     string
	extract func(v any) (string, bool)
}

var shapes = []shape{
	{"generated", asString},
	{"generated", firstString},
	{"output", asString},
	{"output", firstString},
	{"data", firstString},
	{"text", asString},
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func firstString(v any) (string, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	return asString(list[0])
}

// ExtractGenerated runs the shape matchers over a decoded response
// body.
func ExtractGenerated(payload map[string]any) (string, bool) {
	for _, s := range shapes {
		v, ok := payload[s.key]
		if !ok {
			continue
		}
		if text, ok := s.extract(v); ok {
			return text, true
		}
	}
	return "", false
}
