package plotcfg

import "encoding/json"

// defaultDomain is applied to any axis the input leaves unspecified.
var defaultDomain = [2]float64{-10, 10}

// DefaultDomain returns the [-10,10] fallback axis domain.
func DefaultDomain() [2]float64 { return defaultDomain }

// Normalize decodes one input string and resolves which of the two accepted
// shapes it uses. An object carrying an array "data" field is the advanced
// multi-series shape; anything else that decodes as JSON takes the legacy
// single-function branch. Undecodable text yields a *ParseError and nothing
// else: the caller must not keep rendering stale data.
//
// Series entries are passed through raw; per-field sanitization happens in
// the processor.
func Normalize(text string) (*NormalizedConfig, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, &ParseError{cause: err}
	}
	fields, _ := v.(map[string]any)
	if data, ok := fields["data"].([]any); ok {
		return normalizeAdvanced(fields, data), nil
	}
	return normalizeLegacy(fields), nil
}

func normalizeAdvanced(fields map[string]any, data []any) *NormalizedConfig {
	nc := &NormalizedConfig{
		Grid:  boolField(fields, "grid", true),
		XAxis: axisField(fields, "xAxis"),
		YAxis: axisField(fields, "yAxis"),
	}
	nc.Title, _ = fields["title"].(string)
	nc.DisableZoom = boolField(fields, "disableZoom", false)
	nc.Series = make([]RawSeries, len(data))
	for i, entry := range data {
		if m, ok := entry.(map[string]any); ok {
			nc.Series[i] = RawSeries(m)
		} else {
			// Keep the slot so series count matches what the caller declared.
			nc.Series[i] = RawSeries{}
		}
	}
	return nc
}

// normalizeLegacy synthesizes a single polyline series from the shorthand
// {fn, domain} form. The label keeps the raw fn text as typed; the expression
// defaults to the identity function when fn is absent.
func normalizeLegacy(fields map[string]any) *NormalizedConfig {
	rawFn, _ := fields["fn"].(string)
	expr := rawFn
	if expr == "" {
		expr = "x"
	}
	xDomain := numberPair(fields["domain"])
	if xDomain == nil {
		d := defaultDomain
		xDomain = &d
	}
	yDomain := defaultDomain
	return &NormalizedConfig{
		Legacy: true,
		Grid:   true,
		XAxis:  Axis{Domain: xDomain},
		YAxis:  Axis{Domain: &yDomain},
		Series: []RawSeries{{
			"fn":        expr,
			"color":     Palette[0],
			"graphType": string(ModePolyline),
			"label":     rawFn,
		}},
	}
}

func boolField(fields map[string]any, key string, fallback bool) bool {
	if b, ok := fields[key].(bool); ok {
		return b
	}
	return fallback
}

func axisField(fields map[string]any, key string) Axis {
	m, ok := fields[key].(map[string]any)
	if !ok {
		return Axis{}
	}
	ax := Axis{Domain: numberPair(m["domain"])}
	ax.Label, _ = m["label"].(string)
	// An inverted or degenerate domain is unusable; drop it rather than pass
	// a bad range to the renderer.
	if ax.Domain != nil && ax.Domain[0] >= ax.Domain[1] {
		ax.Domain = nil
	}
	return ax
}

// numberPair decodes a value as exactly two numbers. Anything else, including
// longer arrays, is treated as absent: bounds are never partially applied.
func numberPair(v any) *[2]float64 {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil
	}
	a, ok := toFloat(arr[0])
	if !ok {
		return nil
	}
	b, ok := toFloat(arr[1])
	if !ok {
		return nil
	}
	return &[2]float64{a, b}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
