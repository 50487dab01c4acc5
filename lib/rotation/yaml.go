package rotation

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"
)

// UnmarshalYAML lets config files name modes either by number or by name
func (m *Mode) UnmarshalYAML(b []byte) error {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseMode(fmt.Sprint(v))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
