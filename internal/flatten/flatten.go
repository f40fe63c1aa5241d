// Package flatten reshapes nested country records into the flat,
// display-ready form the table front-end consumes. Every function here is
// total: malformed or missing input produces sentinel values, never an
// error, so dirty upstream data cannot break a rendering pipeline.
package flatten

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"country-table-service/internal/model"
)

// FlattenOne maps one nested record to a flat record. A nil record (absent,
// null, or undecodable input) yields the fully-absent record: every string
// field "N/A", flagUrl "", population and area unavailable.
func FlattenOne(c *model.Country) model.FlatCountry {
	flat := model.FlatCountry{
		Name:       model.NotAvailable,
		Region:     model.NotAvailable,
		Capital:    model.NotAvailable,
		Languages:  model.NotAvailable,
		Population: model.Unavailable(),
		Area:       model.Unavailable(),
		FlagURL:    "",
	}
	if c == nil {
		return flat
	}

	if c.Name != nil && c.Name.Common != nil && *c.Name.Common != "" {
		flat.Name = *c.Name.Common
	}
	if c.Region != nil && *c.Region != "" {
		flat.Region = *c.Region
	}
	if len(c.Capital) > 0 && c.Capital[0] != "" {
		flat.Capital = c.Capital[0]
	}
	flat.Languages = FormatLanguages(c.Languages)
	// Population and area keep their numeric type whenever the source had
	// a number, 0 and negatives included. Only absent/null becomes "N/A".
	if c.Population != nil {
		flat.Population = model.Numeric(*c.Population)
	}
	if c.Area != nil {
		flat.Area = model.Numeric(*c.Area)
	}
	if c.Flags != nil && c.Flags.PNG != nil && *c.Flags.PNG != "" {
		flat.FlagURL = *c.Flags.PNG
	}
	return flat
}

// FlattenMany flattens every record, preserving order and length. A nil
// slice flattens to an empty slice, not nil, so callers always get a
// JSON array.
func FlattenMany(countries []*model.Country) []model.FlatCountry {
	flats := make([]model.FlatCountry, 0, len(countries))
	for _, c := range countries {
		flats = append(flats, FlattenOne(c))
	}
	return flats
}

// DecodeCountries decodes a JSON array of country records element by
// element. Input that is not an array (null included) decodes to nil; an
// element that is not a well-formed record (null, a number, a string,
// mistyped fields) decodes to a nil element. Positions are preserved
// either way.
func DecodeCountries(data []byte) []*model.Country {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil
	}

	countries := make([]*model.Country, len(raws))
	for i, raw := range raws {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var c model.Country
		if err := json.Unmarshal(trimmed, &c); err != nil {
			continue
		}
		countries[i] = &c
	}
	return countries
}

// FormatLanguages joins language display names with ", " in the order the
// source object listed them. Nil or empty mappings format as "N/A".
func FormatLanguages(languages model.LanguageMap) string {
	if len(languages) == 0 {
		return model.NotAvailable
	}
	names := make([]string, len(languages))
	for i, entry := range languages {
		names[i] = entry.Name
	}
	return strings.Join(names, ", ")
}

// FormatNumber renders a value for display with grouped thousands
// (1234567 -> "1,234,567"). Zero is a valid value and formats as "0";
// unavailable values and NaN format as "N/A". The sign and any fractional
// digits pass through unchanged; only the integer digits are grouped.
func FormatNumber(n model.Number) string {
	if !n.Valid || math.IsNaN(n.Value) {
		return model.NotAvailable
	}
	return humanize.Commaf(n.Value)
}
