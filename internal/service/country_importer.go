package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"country-table-service/internal/flatten"
	"country-table-service/internal/model"
)

const (
	keyFlatCountries = "countries:flat"
	keyMetadata      = "countries:metadata"
	keyPrefixIndex   = "countries:prefix-index"
	prefixKeyFormat  = "prefix:%s"
)

type CountryImporter interface {
	ImportFromReader(ctx context.Context, reader io.Reader) (int, error)
	RefreshFromUpstream(ctx context.Context) (int, error)
	GetImportStatus() string
	ClearDatabase(ctx context.Context) error
}

type countryImporter struct {
	redisClient *redis.Client
	httpClient  *http.Client
	upstreamURL string
	status      string
}

func NewCountryImporter(redisClient *redis.Client, upstreamURL string) CountryImporter {
	return &countryImporter{
		redisClient: redisClient,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		upstreamURL: upstreamURL,
		status:      "ready",
	}
}

func generatePrefixes(name string) []string {
	name = strings.ToLower(name)
	var prefixes []string
	runes := []rune(name) // Handle UTF-8 characters properly

	// Generate prefixes starting from minimum 2 characters
	for i := 2; i <= len(runes); i++ {
		prefixes = append(prefixes, string(runes[:i]))
	}
	return prefixes
}

// ImportFromReader reads a JSON array of nested country records, flattens
// them, and stores the flat records in input order.
func (ci *countryImporter) ImportFromReader(ctx context.Context, reader io.Reader) (int, error) {
	ci.status = "importing"
	defer func() { ci.status = "ready" }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, fmt.Errorf("failed to read payload: %w", err)
	}
	return ci.importPayload(ctx, data)
}

// RefreshFromUpstream fetches the configured country API and imports the
// response body.
func (ci *countryImporter) RefreshFromUpstream(ctx context.Context) (int, error) {
	ci.status = "importing"
	defer func() { ci.status = "ready" }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ci.upstreamURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ci.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return ci.importPayload(ctx, data)
}

func (ci *countryImporter) importPayload(ctx context.Context, data []byte) (int, error) {
	countries := flatten.DecodeCountries(data)
	if countries == nil {
		return 0, fmt.Errorf("payload is not a JSON array of country records")
	}

	// Re-import replaces the previous list and its suggestion index. The
	// prefix keys written by earlier imports are tracked in a set so they
	// can be dropped here without scanning the keyspace.
	staleKeys, err := ci.redisClient.SMembers(ctx, keyPrefixIndex).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read prefix index: %w", err)
	}
	if err := ci.redisClient.Del(ctx, append(staleKeys, keyPrefixIndex, keyFlatCountries)...).Err(); err != nil {
		return 0, fmt.Errorf("failed to clear previous import: %w", err)
	}

	pipeline := ci.redisClient.Pipeline()
	batchSize := 100
	count := 0

	for _, flat := range flatten.FlattenMany(countries) {
		jsonData, err := json.Marshal(flat)
		if err != nil {
			return count, fmt.Errorf("failed to marshal country: %w", err)
		}

		// 1. Store the flat record, preserving input order
		pipeline.RPush(ctx, keyFlatCountries, jsonData)

		// 2. Index the country name for prefix suggestions
		if flat.Name != model.NotAvailable {
			member := fmt.Sprintf("%s|%s", flat.Name, flat.Region)
			for _, prefix := range generatePrefixes(flat.Name) {
				prefixKey := fmt.Sprintf(prefixKeyFormat, prefix)
				pipeline.SAdd(ctx, prefixKey, member)
				pipeline.SAdd(ctx, keyPrefixIndex, prefixKey)
			}
		}

		count++

		// Execute pipeline in batches
		if count%batchSize == 0 {
			if _, err := pipeline.Exec(ctx); err != nil {
				return count, fmt.Errorf("failed to execute pipeline: %w", err)
			}
			pipeline = ci.redisClient.Pipeline()
		}
	}

	// Execute remaining commands
	if count%batchSize != 0 {
		if _, err := pipeline.Exec(ctx); err != nil {
			return count, fmt.Errorf("failed to execute final pipeline: %w", err)
		}
	}

	metadata := map[string]interface{}{
		"total_records": count,
		"status":        "completed",
		"timestamp":     time.Now().Unix(),
	}
	metadataJSON, _ := json.Marshal(metadata)
	if err := ci.redisClient.Set(ctx, keyMetadata, metadataJSON, 0).Err(); err != nil {
		return count, fmt.Errorf("failed to store metadata: %w", err)
	}

	return count, nil
}

func (ci *countryImporter) GetImportStatus() string {
	return ci.status
}

func (ci *countryImporter) ClearDatabase(ctx context.Context) error {
	return ci.redisClient.FlushAll(ctx).Err()
}
