package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/emotiondetector/emotiondetector/emotion"
)

type Config struct {
	Emotion EmotionConfig
	Server  ServerConfig

	HealthcheckPort int

	LogLevel  log.Level
	LogFormat LogFormat
}

type EmotionConfig struct {
	ApiURL     url.URL
	ModelID    string
	Timeout    time.Duration
	SecretPath string
}

type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	defaultServerHost = "0.0.0.0"
	defaultServerPort = 5000
)

const (
	// Full URL of the EmotionPredict endpoint
	EnvfileKeyEmotionAPI = "EMOTION_API_URL"
	// Model identifier sent in the grpc-metadata-mm-model-id header
	EnvfileKeyEmotionModelID = "EMOTION_MODEL_ID"
	// Upper bound for a single classification call, in seconds
	EnvfileKeyEmotionTimeout = "EMOTION_TIMEOUT"
	// AWS Secrets Manager path where the emotion API key can be found (optional)
	EnvfileKeyEmotionSecretPath = "EMOTION_SECRETS_PATH"

	// Interface the front-end binds to
	EnvfileKeyServerHost = "SERVER_HOST"
	// Port the front-end listens on
	EnvfileKeyServerPort = "SERVER_PORT"
	// Port for the standalone healthcheck server, 0 disables it
	EnvfileKeyHealthcheckPort = "HEALTHCHECK_PORT"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
)

// FromEnvfile reads ./.env, with environment variables taking precedence.
func FromEnvfile() (Config, error) {
	return Load(".")
}

// Load reads the .env file in dir if there is one. A missing file is fine,
// every key has a default or is optional.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("dotenv")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
		log.Debug("no .env file found, using environment only")
	}

	rawURL := getConfigString(v, EnvfileKeyEmotionAPI)
	if rawURL == "" {
		rawURL = emotion.DefaultEndpoint
	}
	apiURL, err := url.Parse(rawURL)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing emotion API URL: %w", err)
	}
	if apiURL.Scheme != "http" && apiURL.Scheme != "https" {
		return Config{}, fmt.Errorf("emotion API URL must be http(s): %s", rawURL)
	}

	modelID := getConfigString(v, EnvfileKeyEmotionModelID)
	if modelID == "" {
		modelID = emotion.DefaultModelID
	}

	timeout := time.Duration(getConfigInt(v, EnvfileKeyEmotionTimeout)) * time.Second
	if timeout <= 0 {
		timeout = emotion.DefaultTimeout
	}

	host := getConfigString(v, EnvfileKeyServerHost)
	if host == "" {
		host = defaultServerHost
	}
	port := getConfigInt(v, EnvfileKeyServerPort)
	if port == 0 {
		port = defaultServerPort
	}

	logLevel, err := log.ParseLevel(getConfigString(v, EnvfileKeyLogLevel))
	if err != nil {
		// Default to info level but log a warning
		log.Warnf("unable to parse log level: %v", err)
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(v, EnvfileKeyLogFormat))
	if err != nil {
		// Default to text formatter but log a warning
		log.Warnf("unable to parse log format: %v", err)
		logFormat = LogFormatText
	}

	return Config{
		Emotion: EmotionConfig{
			ApiURL:     *apiURL,
			ModelID:    modelID,
			Timeout:    timeout,
			SecretPath: getConfigString(v, EnvfileKeyEmotionSecretPath),
		},
		Server: ServerConfig{
			Host: host,
			Port: port,
		},
		HealthcheckPort: getConfigInt(v, EnvfileKeyHealthcheckPort),
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}, nil
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(v *viper.Viper, key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = v.GetString(key)
	}
	return strings.TrimSpace(value)
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(v *viper.Viper, key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return v.GetInt(key)
	}
	value, err := strconv.Atoi(strings.TrimSpace(envVarValue))
	if err != nil {
		return 0
	}
	return value
}
