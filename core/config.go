package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all client settings, loaded once at process start.
type Config struct {
	Debug   bool
	Env     string
	AppName string
	Build   string

	APIBaseURL  string
	HTTPTimeout time.Duration // 0 = no client-side timeout

	StorageDir string // where the session record lives

	CacheSize int
	CacheTTL  time.Duration

	RollbarToken string
}

var Conf *Config

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Academia")
	v.SetDefault("build", "dev")
	v.SetDefault("apiBaseURL", "http://localhost:8000/api")
	v.SetDefault("httpTimeout", 0*time.Second)
	v.SetDefault("storageDir", defaultStorageDir())
	v.SetDefault("cacheSize", 256)
	v.SetDefault("cacheTTL", 30*time.Second)
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:        v.GetBool("debug"),
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		APIBaseURL:   strings.TrimRight(v.GetString("apiBaseURL"), "/"),
		HTTPTimeout:  v.GetDuration("httpTimeout"),
		StorageDir:   v.GetString("storageDir"),
		CacheSize:    v.GetInt("cacheSize"),
		CacheTTL:     v.GetDuration("cacheTTL"),
		RollbarToken: v.GetString("rollbarToken"),
	}
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".academia"
	}
	return filepath.Join(dir, "academia")
}
