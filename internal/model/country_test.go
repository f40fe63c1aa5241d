package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageMap_PreservesKeyOrder(t *testing.T) {
	var m LanguageMap
	require.NoError(t, json.Unmarshal([]byte(
		`{"ben": "Bengali", "eng": "English", "hin": "Hindi", "urd": "Urdu"}`), &m))

	require.Len(t, m, 4)
	assert.Equal(t, LanguageEntry{Code: "ben", Name: "Bengali"}, m[0])
	assert.Equal(t, LanguageEntry{Code: "eng", Name: "English"}, m[1])
	assert.Equal(t, LanguageEntry{Code: "hin", Name: "Hindi"}, m[2])
	assert.Equal(t, LanguageEntry{Code: "urd", Name: "Urdu"}, m[3])
}

func TestLanguageMap_TolerantDecode(t *testing.T) {
	// Null and non-object values decode to nil instead of failing, so a
	// record with a junk languages field still flattens field by field.
	for _, payload := range []string{`null`, `42`, `"eng"`, `[1, 2]`} {
		var m LanguageMap
		require.NoError(t, json.Unmarshal([]byte(payload), &m), payload)
		assert.Nil(t, m, payload)
	}
}

func TestLanguageMap_SkipsNonStringValues(t *testing.T) {
	var m LanguageMap
	require.NoError(t, json.Unmarshal([]byte(
		`{"eng": "English", "bad": 7, "fra": "French"}`), &m))

	require.Len(t, m, 2)
	assert.Equal(t, "English", m[0].Name)
	assert.Equal(t, "French", m[1].Name)
}

func TestLanguageMap_MarshalRoundTrip(t *testing.T) {
	m := LanguageMap{{Code: "spa", Name: "Spanish"}, {Code: "grn", Name: "Guaraní"}}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"spa":"Spanish","grn":"Guaraní"}`, string(data))
}

func TestNumber_Marshal(t *testing.T) {
	data, err := json.Marshal(Numeric(67391582))
	require.NoError(t, err)
	assert.Equal(t, `67391582`, string(data))

	data, err = json.Marshal(Numeric(0))
	require.NoError(t, err)
	assert.Equal(t, `0`, string(data))

	data, err = json.Marshal(Unavailable())
	require.NoError(t, err)
	assert.Equal(t, `"N/A"`, string(data))
}

func TestNumber_Unmarshal(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`551695`), &n))
	assert.Equal(t, Numeric(551695), n)

	require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &n))
	assert.Equal(t, Unavailable(), n)

	// Null means absent, not zero.
	n = Numeric(5)
	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, Unavailable(), n)

	assert.Error(t, json.Unmarshal([]byte(`"seven"`), &n))
}

func TestFlatCountry_Serialization(t *testing.T) {
	flat := FlatCountry{
		Name:       "Antarctica",
		Region:     NotAvailable,
		Capital:    NotAvailable,
		Languages:  NotAvailable,
		Population: Unavailable(),
		Area:       Numeric(14000000),
		FlagURL:    "",
	}

	data, err := json.Marshal(flat)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Antarctica","region":"N/A","capital":"N/A","languages":"N/A","population":"N/A","area":14000000,"flagUrl":""}`,
		string(data))

	var decoded FlatCountry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, flat, decoded)
}
