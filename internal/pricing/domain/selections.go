package domain

import (
	"bytes"
	"encoding/json"
)

const addonsKey = "addons"

// Selections is the buyer's configuration: add-on ids plus one value per
// option code. On the wire it is a flat object, {"addons":[...], "<code>":"<value>"}.
type Selections struct {
	Addons  []string
	Options map[string]string
}

// Value returns the selected value for code. Empty strings count as absent.
func (s Selections) Value(code string) (string, bool) {
	v, ok := s.Options[code]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// AddonIDs returns the selected add-on ids, never nil.
func (s Selections) AddonIDs() []string {
	if s.Addons == nil {
		return []string{}
	}
	return s.Addons
}

func (s Selections) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Options)+1)
	for code, value := range s.Options {
		if code == addonsKey {
			continue
		}
		out[code] = value
	}
	out[addonsKey] = s.AddonIDs()
	return json.Marshal(out)
}

// UnmarshalJSON keeps string add-on ids and string option values. Anything
// else is dropped, so a non-string value behaves as if it was never sent.
func (s *Selections) UnmarshalJSON(data []byte) error {
	*s = Selections{Addons: []string{}, Options: map[string]string{}}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if key == addonsKey {
			s.Addons = decodeAddonIDs(value)
			continue
		}
		if str, ok := decodeString(value); ok {
			s.Options[key] = str
		}
	}
	return nil
}

func decodeAddonIDs(value json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return []string{}
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id, ok := decodeString(item); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func decodeString(value json.RawMessage) (string, bool) {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return "", false
	}
	var str string
	if err := json.Unmarshal(value, &str); err != nil {
		return "", false
	}
	return str, true
}
