package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Country is one nested record as returned by the upstream country API.
// Every field is optional; absent and null are both represented as nil.
type Country struct {
	Name       *CountryName  `json:"name"`
	Region     *string       `json:"region"`
	Capital    []string      `json:"capital"`
	Languages  LanguageMap   `json:"languages"`
	Population *float64      `json:"population"`
	Area       *float64      `json:"area"`
	Flags      *CountryFlags `json:"flags"`
}

type CountryName struct {
	Common *string `json:"common"`
}

type CountryFlags struct {
	PNG *string `json:"png"`
}

// LanguageEntry is one code→display-name pair from the languages object.
type LanguageEntry struct {
	Code string
	Name string
}

// LanguageMap preserves the key order of the source JSON object, which a
// plain map[string]string would not.
type LanguageMap []LanguageEntry

// UnmarshalJSON decodes a JSON object into ordered entries. Null and
// non-object values decode to nil rather than failing, so a record with a
// junk languages field still flattens field by field.
func (m *LanguageMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}

	entries := make(LanguageMap, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			// Non-string display name, skip the entry.
			continue
		}
		entries = append(entries, LanguageEntry{Code: key, Name: name})
	}

	*m = entries
	return nil
}

func (m LanguageMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Number is either a numeric value or the "N/A" sentinel. It keeps
// population and area numeric in JSON whenever the source had a number
// (including 0), so table consumers can sort and sum without re-parsing.
type Number struct {
	Value float64
	Valid bool
}

func Numeric(v float64) Number {
	return Number{Value: v, Valid: true}
}

func Unavailable() Number {
	return Number{}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return json.Marshal(NotAvailable)
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*n = Unavailable()
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s != NotAvailable {
			return fmt.Errorf("unexpected string %q for numeric field", s)
		}
		*n = Unavailable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*n = Numeric(v)
	return nil
}

// NotAvailable is the sentinel substituted for absent data in every flat
// field except flagUrl, whose sentinel is the empty string.
const NotAvailable = "N/A"

// FlatCountry is the display-ready record. All seven fields are always
// present; no field is ever null.
type FlatCountry struct {
	Name       string `json:"name"`
	Region     string `json:"region"`
	Capital    string `json:"capital"`
	Languages  string `json:"languages"`
	Population Number `json:"population"`
	Area       Number `json:"area"`
	FlagURL    string `json:"flagUrl"`
}
