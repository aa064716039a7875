package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var Env map[string]string

// GetEnv prefers the loaded .env map and falls back to the process
// environment, so container deployments work without a .env file.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file it finds. The relative paths cover
// running from the project root and from cmd/migrate.
func SetupEnvFile() {
	for _, envFile := range []string{".env", "../../.env"} {
		loaded, err := godotenv.Read(envFile)
		if err == nil {
			Env = loaded
			return
		}
	}
	Env = map[string]string{}
	log.Println("no .env file found, using process environment only")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
