package localrank

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// pageEnvelope is the paged shape some list endpoints use.
type pageEnvelope struct {
	Results json.RawMessage `json:"results"`
	Count   int             `json:"count"`
}

// decodeList resolves the API's two list shapes, a bare JSON array or a
// page object {"results": [...], "count": n}, exactly once at the fetch
// boundary. out must be a pointer to a slice.
func decodeList(data []byte, out any) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return eris.Wrap(err, "localrank: unmarshal list")
		}
		return nil
	}

	var page pageEnvelope
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return eris.Wrap(err, "localrank: unmarshal page envelope")
	}
	if len(page.Results) == 0 {
		return nil
	}
	if err := json.Unmarshal(page.Results, out); err != nil {
		return eris.Wrap(err, "localrank: unmarshal page results")
	}
	return nil
}
