package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"

	"github.com/emotiondetector/emotiondetector/config"
	"github.com/emotiondetector/emotiondetector/emotion"
)

// SecretGetter is the slice of the Secrets Manager client this package uses.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type EmotionService struct {
	config config.EmotionConfig
	client *emotion.Client
}

// NewEmotionService builds the emotion client. When a secret path is
// configured the API key is read from Secrets Manager; secrets may be nil
// otherwise.
func NewEmotionService(ctx context.Context, cfg config.Config, secrets SecretGetter) (*EmotionService, error) {
	opts := []emotion.ClientOption{emotion.WithTimeout(cfg.Emotion.Timeout)}

	if cfg.Emotion.SecretPath != "" {
		apiKey, err := fetchAPIKey(ctx, secrets, cfg.Emotion.SecretPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, emotion.WithAPIKey(apiKey))
	}

	client := emotion.NewClient(cfg.Emotion.ApiURL, cfg.Emotion.ModelID, opts...)
	log.WithField("model", cfg.Emotion.ModelID).Infof("Emotion client initialized. Host: %s", cfg.Emotion.ApiURL.Host)

	return &EmotionService{
		config: cfg.Emotion,
		client: client,
	}, nil
}

func fetchAPIKey(ctx context.Context, secrets SecretGetter, path string) (string, error) {
	if secrets == nil {
		return "", errors.New("emotion secret path set but no secrets manager client available")
	}
	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		return "", fmt.Errorf("emotion secrets lookup error: %w", err)
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("emotion secret %s has no string value", path)
	}
	var emotionSecrets config.EmotionSecretData
	if err := json.Unmarshal([]byte(*result.SecretString), &emotionSecrets); err != nil {
		return "", fmt.Errorf("emotion secrets read error: %w", err)
	}
	if emotionSecrets.ApiKey == "" {
		return "", fmt.Errorf("emotion secret %s has no apiKey", path)
	}
	return emotionSecrets.ApiKey, nil
}

func (s *EmotionService) Analyze(ctx context.Context, text string) (*emotion.Result, error) {
	start := time.Now()
	result, err := s.client.Analyze(ctx, text)
	logger := log.WithField("elapsed", time.Since(start)).WithField("chars", len(text))
	if err != nil {
		if errors.Is(err, emotion.ErrInvalidText) {
			logger.Info("text could not be classified")
		} else {
			logger.Errorf("emotion analysis failed: %v", err)
		}
		return nil, err
	}
	logger.WithField("dominant", result.Dominant).Debug("emotion analysis complete")
	return result, nil
}

func (s *EmotionService) Timeout() time.Duration {
	return s.config.Timeout
}
