package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"country-table-service/internal/model"
)

type CountryQuery interface {
	ListCountries(ctx context.Context) ([]model.FlatCountry, error)
	GetNameSuggestions(ctx context.Context, prefix string) ([]model.NameSuggestion, error)
	GetStats(ctx context.Context) (model.CountryStats, error)
}

type countryQuery struct {
	redisClient *redis.Client
}

func NewCountryQuery(redisClient *redis.Client) CountryQuery {
	return &countryQuery{
		redisClient: redisClient,
	}
}

// ListCountries returns all stored flat records in import order.
func (cq *countryQuery) ListCountries(ctx context.Context) ([]model.FlatCountry, error) {
	jsonStrings, err := cq.redisClient.LRange(ctx, keyFlatCountries, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	countries := make([]model.FlatCountry, 0, len(jsonStrings))
	for _, jsonStr := range jsonStrings {
		var country model.FlatCountry
		if err := json.Unmarshal([]byte(jsonStr), &country); err != nil {
			return nil, fmt.Errorf("failed to unmarshal country: %w", err)
		}
		countries = append(countries, country)
	}

	return countries, nil
}

func (cq *countryQuery) GetNameSuggestions(ctx context.Context, prefix string) ([]model.NameSuggestion, error) {
	if len([]rune(prefix)) < 2 {
		return []model.NameSuggestion{}, nil
	}

	prefix = strings.ToLower(prefix)
	limit := 10

	matches, err := cq.redisClient.SMembers(ctx, fmt.Sprintf(prefixKeyFormat, prefix)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	// Process matches and remove duplicates
	seen := make(map[string]bool)
	suggestions := make([]model.NameSuggestion, 0)

	for _, match := range matches {
		// match format: "name|region"
		parts := strings.SplitN(match, "|", 2)
		if len(parts) != 2 {
			continue
		}

		name := parts[0]
		if seen[name] {
			continue
		}
		seen[name] = true

		suggestions = append(suggestions, model.NameSuggestion{
			Name:   name,
			Region: parts[1],
		})

		if len(suggestions) >= limit {
			break
		}
	}

	return suggestions, nil
}

// GetStats aggregates over the stored records. Only numeric population and
// area values contribute to the sums; "N/A" entries are skipped.
func (cq *countryQuery) GetStats(ctx context.Context) (model.CountryStats, error) {
	countries, err := cq.ListCountries(ctx)
	if err != nil {
		return model.CountryStats{}, err
	}

	stats := model.CountryStats{TotalCountries: len(countries)}
	for _, c := range countries {
		if c.Population.Valid {
			stats.TotalPopulation += c.Population.Value
			stats.WithPopulation++
		}
		if c.Area.Valid {
			stats.TotalArea += c.Area.Value
		}
	}

	return stats, nil
}
