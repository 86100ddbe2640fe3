package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emotiondetector/emotiondetector/config"
	"github.com/emotiondetector/emotiondetector/emotion"
)

type MockSecretGetter struct {
	mock.Mock
}

func (m *MockSecretGetter) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, aws.ToString(params.SecretId))
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}

func testConfig(t *testing.T, apiURL string, secretPath string) config.Config {
	t.Helper()
	u, err := url.Parse(apiURL)
	require.NoError(t, err)
	return config.Config{
		Emotion: config.EmotionConfig{
			ApiURL:     *u,
			ModelID:    emotion.DefaultModelID,
			Timeout:    2 * time.Second,
			SecretPath: secretPath,
		},
	}
}

func TestNewEmotionService(t *testing.T) {
	t.Run("works without secrets when no path is configured", func(t *testing.T) {
		svc, err := NewEmotionService(context.TODO(), testConfig(t, "http://localhost:1/predict", ""), nil)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, svc.Timeout())
	})

	t.Run("uses the API key from secrets manager", func(t *testing.T) {
		var user, pass string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, _ = r.BasicAuth()
			fmt.Fprint(w, `{"emotionPredictions":[{"emotion":{"sadness":0.6,"joy":0.1}}]}`)
		}))
		defer upstream.Close()

		secrets := new(MockSecretGetter)
		secrets.On("GetSecretValue", context.TODO(), "emotion/prod").
			Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"apiKey":"k3y"}`)}, nil)

		svc, err := NewEmotionService(context.TODO(), testConfig(t, upstream.URL, "emotion/prod"), secrets)
		require.NoError(t, err)

		result, err := svc.Analyze(context.TODO(), "I miss my friends")
		require.NoError(t, err)
		assert.Equal(t, emotion.EmotionSadness, result.Dominant)
		assert.Equal(t, "apikey", user)
		assert.Equal(t, "k3y", pass)
		secrets.AssertNumberOfCalls(t, "GetSecretValue", 1)
	})

	t.Run("fails when the secret cannot be read", func(t *testing.T) {
		secrets := new(MockSecretGetter)
		secrets.On("GetSecretValue", context.TODO(), "emotion/prod").
			Return(&secretsmanager.GetSecretValueOutput{}, errors.New("access denied"))

		_, err := NewEmotionService(context.TODO(), testConfig(t, "http://localhost:1/predict", "emotion/prod"), secrets)
		assert.Error(t, err)
	})

	t.Run("fails when the secret has no api key", func(t *testing.T) {
		secrets := new(MockSecretGetter)
		secrets.On("GetSecretValue", context.TODO(), "emotion/prod").
			Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{}`)}, nil)

		_, err := NewEmotionService(context.TODO(), testConfig(t, "http://localhost:1/predict", "emotion/prod"), secrets)
		assert.Error(t, err)
	})

	t.Run("fails when a secret path is set without a client", func(t *testing.T) {
		_, err := NewEmotionService(context.TODO(), testConfig(t, "http://localhost:1/predict", "emotion/prod"), nil)
		assert.Error(t, err)
	})
}

func TestEmotionServiceAnalyze(t *testing.T) {
	t.Run("passes classification failures through", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer upstream.Close()

		svc, err := NewEmotionService(context.TODO(), testConfig(t, upstream.URL, ""), nil)
		require.NoError(t, err)

		_, err = svc.Analyze(context.TODO(), "hello")
		assert.ErrorIs(t, err, emotion.ErrClassification)
	})

	t.Run("passes invalid text through", func(t *testing.T) {
		svc, err := NewEmotionService(context.TODO(), testConfig(t, "http://localhost:1/predict", ""), nil)
		require.NoError(t, err)

		_, err = svc.Analyze(context.TODO(), "")
		assert.ErrorIs(t, err, emotion.ErrInvalidText)
	})
}
