package vars

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// LoadJSONFiles merges flat JSON objects into one variable map; later files
// win on duplicate keys. Non-string values are coerced to strings.
func LoadJSONFiles(paths []string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		for k, v := range m {
			switch x := v.(type) {
			case string:
				out[k] = x
			default:
				out[k] = fmt.Sprint(x) // coerce numbers/bools to string
			}
		}
	}
	return out, nil
}

// Expand replaces {{name}} placeholders with values from m. Unknown
// placeholders are left intact so the importing client can resolve them.
func Expand(s string, m map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(tok string) string {
		name := placeholderRe.FindStringSubmatch(tok)[1]
		if v, ok := m[name]; ok {
			return v
		}
		return tok
	})
}
