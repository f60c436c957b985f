package formatting

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It handles marshaling errors gracefully by falling back to fmt.Sprintf.
//
// Example:
//
//	data := map[string]interface{}{"name": "test", "value": 42}
//	fmt.Println(formatting.PrettyJSON(data))
//	// Output:
//	// {
//	//   "name": "test",
//	//   "value": 42
//	// }
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// PrettyJSONText re-indents serialized JSON. Text that is not valid JSON is
// returned unchanged.
func PrettyJSONText(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// IsEmptyJSON reports whether s is blank or an empty JSON object, array or null.
func IsEmptyJSON(s string) bool {
	switch string(bytes.TrimSpace([]byte(s))) {
	case "", "{}", "[]", "null":
		return true
	}
	return false
}
