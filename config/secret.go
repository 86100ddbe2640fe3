package config

type EmotionSecretData struct {
	ApiKey string `json:"apiKey"`
}
