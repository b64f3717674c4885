package enricher

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeFields parses a model reply into a flat key/value map. Models wrap
// JSON in prose or code fences often enough that we first cut the reply down
// to the outermost brace pair before unmarshaling.
func DecodeFields(reply string) (map[string]string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model reply: %s", truncate(reply, 200))
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling model reply: %w (raw: %s)", err, truncate(reply, 200))
	}

	fields := make(map[string]string, len(raw))
	for key, v := range raw {
		switch val := v.(type) {
		case string:
			fields[key] = val
		case nil:
			// explicit null, treat as not mentioned
		case float64:
			// models occasionally emit bare numbers for ages and doses
			fields[key] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("non-text value for key %q in model reply", key)
		}
	}
	return fields, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
