package config

import (
	"os"

	"github.com/joho/godotenv"
)

var Envs struct {
	PORT            string
	ALLOWED_ORIGINS string
	REDIS_URL       string
	POSTGRES_URL    string
	TICKET_KEY      string
	GIN_MODE        string
	DEBUG           bool
}

// Load reads a .env file if one exists and fills Envs. Real
// deployments set the environment directly, so a missing file is not
// an error.
func Load() {
	_ = godotenv.Load()

	Envs.PORT = getenv("PORT", "5000")
	Envs.ALLOWED_ORIGINS = os.Getenv("ALLOWED_ORIGINS")
	Envs.REDIS_URL = getenv("REDIS_URL", "redis://localhost:6379/0")
	Envs.POSTGRES_URL = os.Getenv("POSTGRES_URL")
	Envs.TICKET_KEY = os.Getenv("TICKET_KEY")
	Envs.GIN_MODE = os.Getenv("GIN_MODE")
	Envs.DEBUG = os.Getenv("DEBUG") == "true"
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
