package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Gemini trip generation
	GeminiAPIKey string
	GeminiModel  string

	// Geoapify places lookup
	GeoapifyAPIKey  string
	POIRadiusMeters int
	POILimit        int

	// Trip planning workers
	TripWorkerCount int
	TripQueueSize   int

	// Adventure tuning
	QuestCount       int
	PassingThreshold int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:sproutquest.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		GeminiAPIKey:     envOr("GEMINI_API_KEY", ""),
		GeminiModel:      envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeoapifyAPIKey:   envOr("GEOAPIFY_API_KEY", ""),
		POIRadiusMeters:  envIntOr("POI_RADIUS_METERS", 5000),
		POILimit:         envIntOr("POI_LIMIT", 10),
		TripWorkerCount:  envIntOr("TRIP_WORKER_COUNT", 2),
		TripQueueSize:    envIntOr("TRIP_QUEUE_SIZE", 32),
		QuestCount:       envIntOr("QUEST_COUNT", 6),
		PassingThreshold: envIntOr("TRIP_PASS_THRESHOLD", 5),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
