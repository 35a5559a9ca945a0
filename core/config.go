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
	ServerConfig struct {
		Address         string
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	LLMConfig struct {
		Timeout      time.Duration
		SystemPrompt string

		GeminiAPIKey string
		GeminiModel  string
		HFAPIToken   string
		HFModel      string
		OpenAIAPIKey string
		OpenAIModel  string
	}

	Config struct {
		AppName        string
		Build          string
		Env            string // DEV (local; default), TEST, QA, PROD
		Debug          bool
		TestMode       bool
		WorkDir        string
		StrategiesPath string // empty: embedded catalog
		APIURL         string // generation service the CLI talks to
		RollbarToken   string
		SendgridAPIKey string

		Server ServerConfig
		LLM    LLMConfig

		defaultFromEmail string
	}
)

// NewConfig reads the configuration from the environment.
// Variables are prefixed with RADAR_ and nested keys use underscores, e.g. RADAR_LLM_GEMINIAPIKEY.
// A `config/.env.<env>` file, when present, is loaded first.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Pedagogy Radar")
	v.SetDefault("build", "develop")
	v.SetDefault("strategiesPath", "")
	v.SetDefault("apiUrl", "http://127.0.0.1:8000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "Pedagogy Radar <noreply@localhost>")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", "")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.systemPrompt", "Eres un asistente pedagógico experto en educación superior.")
	v.SetDefault("llm.geminiApiKey", "")
	v.SetDefault("llm.geminiModel", "gemini-2.0-flash")
	v.SetDefault("llm.hfApiToken", "")
	v.SetDefault("llm.hfModel", "mistralai/Mixtral-8x7B-Instruct-v0.1")
	v.SetDefault("llm.openaiApiKey", "")
	v.SetDefault("llm.openaiModel", "gpt-3.5-turbo")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix("radar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:        v.GetString("appName"),
		Build:          v.GetString("build"),
		Env:            env,
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		WorkDir:        wd,
		StrategiesPath: v.GetString("strategiesPath"),
		APIURL:         v.GetString("apiUrl"),
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		LLM: LLMConfig{
			Timeout:      v.GetDuration("llm.timeout"),
			SystemPrompt: v.GetString("llm.systemPrompt"),
			GeminiAPIKey: v.GetString("llm.geminiApiKey"),
			GeminiModel:  v.GetString("llm.geminiModel"),
			HFAPIToken:   v.GetString("llm.hfApiToken"),
			HFModel:      v.GetString("llm.hfModel"),
			OpenAIAPIKey: v.GetString("llm.openaiApiKey"),
			OpenAIModel:  v.GetString("llm.openaiModel"),
		},
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	return *addr
}

// SetDefaultFromEmail is meant for tests and tools building a Config by hand.
func (c *Config) SetDefaultFromEmail(addr string) {
	c.defaultFromEmail = addr
}
