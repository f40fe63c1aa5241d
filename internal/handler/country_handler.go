package handler

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"country-table-service/internal/flatten"
	"country-table-service/internal/model"
	"country-table-service/internal/service"
)

type CountryHandler struct {
	countryQuery service.CountryQuery
}

func NewCountryHandler(countryQuery service.CountryQuery) *CountryHandler {
	return &CountryHandler{
		countryQuery: countryQuery,
	}
}

// GetCountries returns the flat records. Supports sort=name|population|area
// and format=display. Numeric columns sort on the preserved numeric value;
// "N/A" entries sort last.
func (h *CountryHandler) GetCountries(c *fiber.Ctx) error {
	countries, err := h.countryQuery.ListCountries(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	switch sortKey := c.Query("sort"); sortKey {
	case "", "none":
	case "name":
		sort.SliceStable(countries, func(i, j int) bool {
			return countries[i].Name < countries[j].Name
		})
	case "population":
		sortByNumber(countries, func(fc model.FlatCountry) model.Number { return fc.Population })
	case "area":
		sortByNumber(countries, func(fc model.FlatCountry) model.Number { return fc.Area })
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported sort key: " + sortKey,
		})
	}

	if c.Query("format") == "display" {
		return c.JSON(fiber.Map{
			"data": toDisplay(countries),
		})
	}

	return c.JSON(fiber.Map{
		"data": countries,
	})
}

// GetSuggestions handles prefix-based country name suggestions
func (h *CountryHandler) GetSuggestions(c *fiber.Ctx) error {
	prefix := c.Query("prefix")
	if prefix == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "prefix is required",
		})
	}

	suggestions, err := h.countryQuery.GetNameSuggestions(c.Context(), prefix)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": suggestions,
	})
}

// GetStats handles aggregate statistics over the stored records
func (h *CountryHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.countryQuery.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": stats,
	})
}

func sortByNumber(countries []model.FlatCountry, key func(model.FlatCountry) model.Number) {
	sort.SliceStable(countries, func(i, j int) bool {
		a, b := key(countries[i]), key(countries[j])
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Value > b.Value
	})
}

func toDisplay(countries []model.FlatCountry) []model.DisplayCountry {
	display := make([]model.DisplayCountry, len(countries))
	for i, fc := range countries {
		display[i] = model.DisplayCountry{
			Name:       fc.Name,
			Region:     fc.Region,
			Capital:    fc.Capital,
			Languages:  fc.Languages,
			Population: flatten.FormatNumber(fc.Population),
			Area:       flatten.FormatNumber(fc.Area),
			FlagURL:    fc.FlagURL,
		}
	}
	return display
}
