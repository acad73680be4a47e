package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Storage StorageConfig
		Server  ServerConfig
		Auth    AuthConfig
	}

	StorageConfig struct {
		// Path is the JSON datastore file standing in for the portal's
		// durable client storage.
		Path string
		// DatabaseURL, when set, switches the resource repositories to the
		// SQL implementations.
		DatabaseURL string
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
	}

	AuthConfig struct {
		// LoginDelay simulates the upstream credential check latency.
		LoginDelay time.Duration
		// TwoFactorCodeTTL bounds both the emailed code and the signed
		// verification token.
		TwoFactorCodeTTL time.Duration
	}
)

// NewConfig loads configuration from defaults, an optional .env file and the
// environment. ENV selects the deployment flavor: DEV (local; default), TEST, QA, PROD.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "Super Admin Portal")
	v.SetDefault("secretKey", "x2m$9vq)wportl+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2e")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@megatechsolutions.org")
	v.SetDefault("storagePath", filepath.Join(Getwd(), "superadmin.db.json"))
	v.SetDefault("databaseURL", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("debugAddress", ":8090")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("loginDelay", 1500*time.Millisecond)
	v.SetDefault("twoFactorCodeTTL", 10*time.Minute)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("loginDelay", time.Duration(0))
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Storage: StorageConfig{
			Path:        v.GetString("storagePath"),
			DatabaseURL: v.GetString("databaseURL"),
		},
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Address:         v.GetString("serverAddress"),
			DebugAddress:    v.GetString("debugAddress"),
			ShutdownTimeout: v.GetDuration("shutdownTimeout"),
		},
		Auth: AuthConfig{
			LoginDelay:       v.GetDuration("loginDelay"),
			TwoFactorCodeTTL: v.GetDuration("twoFactorCodeTTL"),
		},
	}
}
