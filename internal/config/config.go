package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime configuration, read from environment variables.
type Config struct {
	Addr          string        `env:"HTTP_ADDR" env-default:":8080"`
	MongoURI      string        `env:"MONGO_URI" env-default:"mongodb://mongo:27017"`
	MongoDatabase string        `env:"MONGO_DB" env-default:"parchados"`
	Timeout       time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`

	PlaceCollection  string `env:"PLACE_COLLECTION" env-default:"places"`
	UserCollection   string `env:"USER_COLLECTION" env-default:"users"`
	ReviewCollection string `env:"REVIEW_COLLECTION" env-default:"reviews"`
	ResetCollection  string `env:"PASSWORD_RESET_COLLECTION" env-default:"password_resets"`

	JWTSecret   string        `env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer   string        `env:"AUTH_JWT_ISSUER" env-default:"parchados-auth"`
	JWTAudience string        `env:"AUTH_JWT_AUDIENCE" env-default:"parchados-app"`
	TokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" env-default:"24h"`

	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`

	AllowedOrigins []string `env:"API_ALLOWED_ORIGINS" env-default:"*"`

	// ModerationRequirePending switches approve/reject from last-write-wins
	// to demanding the place still be awaiting review.
	ModerationRequirePending bool `env:"MODERATION_REQUIRE_PENDING" env-default:"false"`
}

// Load reads the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
