package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// errorEnvelope is the minimal failure response shared by both tools. It
// deliberately has no data field: only a completed lookup reports data, with
// an explicit null on a miss.
type errorEnvelope struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	UID     string `json:"uid,omitempty"`
	Sheet   string `json:"sheet,omitempty"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// encodeResult renders an envelope as indented UTF-8 JSON. HTML escaping is
// disabled so CJK text and extracted markup stay readable to the agent.
func encodeResult(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		// Last resort: the envelope itself failed to serialize.
		return fmt.Sprintf(`{"success": false, "error": "encoding failed", "message": %q}`, err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}
