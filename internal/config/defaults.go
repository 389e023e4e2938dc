package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	// local bridge process started alongside the dashboard
	DefaultBridgeEndpoint = "http://localhost:3001"
	DefaultOriginScheme   = "http"

	DefaultSampleSize = 15
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
