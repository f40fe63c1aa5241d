package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	RedisAddress    string
	RedisPassword   string
	ServerPort      string
	CountriesAPIURL string
}

var AppConfig Config

const defaultCountriesAPIURL = "https://restcountries.com/v3.1/all?fields=name,region,capital,languages,population,area,flags"

func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	AppConfig = Config{
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		CountriesAPIURL: os.Getenv("COUNTRIES_API_URL"),
	}
	if AppConfig.CountriesAPIURL == "" {
		AppConfig.CountriesAPIURL = defaultCountriesAPIURL
	}
	fmt.Println("Configuration loaded successfully")
	return nil
}
