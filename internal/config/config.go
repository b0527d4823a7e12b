package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Default service-region bounding box: BVI waters, Anegada included.
const (
	DefaultMinLat = 18.30
	DefaultMaxLat = 18.80
	DefaultMinLng = -64.90
	DefaultMaxLng = -64.20
)

type Config struct {
	PostgresURI         string
	RedisURI            string
	MongoURI            string
	Port                string
	FrontendURL         string
	AllowedOrigins      []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	AllowedHost         string   // optional bare hostname for production host checking
	Environment         string   // ENV: production, development, etc.
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	VAPIDPublicKey      string
	VAPIDPrivateKey     string
	VAPIDSubscriber     string // contact address push services may use to reach us

	// Geo-fence bounds for the service region.
	FenceMinLat float64
	FenceMaxLat float64
	FenceMinLng float64
	FenceMaxLng float64

	// CheckinDuration is how long a check-in stays valid before lazy expiry.
	CheckinDuration time.Duration
	// OnlineThreshold classifies a user as online when last_seen is within it.
	OnlineThreshold time.Duration
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/tradewinds?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/tradewinds")),
		Port:                getEnv("PORT", "8080"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:      allowedOrigins,
		AllowedHost:         getEnv("ALLOWED_HOST", ""),
		Environment:         env,
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		VAPIDPublicKey:      getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey:     getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber:     getEnv("VAPID_SUBSCRIBER", "crew@tradewinds-bvi.com"),
		FenceMinLat:         getEnvFloat("FENCE_MIN_LAT", DefaultMinLat),
		FenceMaxLat:         getEnvFloat("FENCE_MAX_LAT", DefaultMaxLat),
		FenceMinLng:         getEnvFloat("FENCE_MIN_LNG", DefaultMinLng),
		FenceMaxLng:         getEnvFloat("FENCE_MAX_LNG", DefaultMaxLng),
		CheckinDuration:     getEnvDuration("CHECKIN_DURATION", 12*time.Hour),
		OnlineThreshold:     getEnvDuration("ONLINE_THRESHOLD", 5*time.Minute),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
