package model

type NameSuggestion struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type CountryStats struct {
	TotalCountries  int     `json:"total_countries"`
	TotalPopulation float64 `json:"total_population"`
	TotalArea       float64 `json:"total_area"`
	WithPopulation  int     `json:"with_population"`
}

// DisplayCountry is a FlatCountry with population and area already rendered
// as grouped strings, returned when the client asks for format=display.
type DisplayCountry struct {
	Name       string `json:"name"`
	Region     string `json:"region"`
	Capital    string `json:"capital"`
	Languages  string `json:"languages"`
	Population string `json:"population"`
	Area       string `json:"area"`
	FlagURL    string `json:"flagUrl"`
}
