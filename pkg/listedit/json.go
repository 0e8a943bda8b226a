package listedit

import (
	"bytes"
	"encoding/json"
)

// marshalJSON encodes v without HTML escaping so payloads match what a
// browser JSON.stringify produces. Renderers escape the attribute value.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
