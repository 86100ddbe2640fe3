package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DefaultModelID  = "emotion_aggregated-workflow_lang_en_stock"
	DefaultTimeout  = 15 * time.Second

	modelIDHeader = "grpc-metadata-mm-model-id"
)

type Client struct {
	endpoint   string
	modelID    string
	apiKey     string
	timeout    time.Duration
	HTTPClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithAPIKey sends the key as IBM-style basic auth ("apikey:<key>").
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithTimeout bounds each Analyze call. Zero or negative keeps the default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewClient(endpoint url.URL, modelID string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint.String(),
		modelID:    modelID,
		timeout:    DefaultTimeout,
		HTTPClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends text to the EmotionPredict endpoint and returns its scores.
// Failures to get a usable reply wrap ErrClassification; text the service
// cannot classify yields ErrInvalidText.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidText
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody, err := json.Marshal(PredictRequest{RawDocument: RawDocument{Text: text}})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrClassification, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrClassification, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(modelIDHeader, c.modelID)
	if c.apiKey != "" {
		req.SetBasicAuth("apikey", c.apiKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrClassification, err)
	}

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidText
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrClassification, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (*Result, error) {
	var pr PredictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrClassification, err)
	}
	if pr.EmotionPredictions == nil {
		return nil, fmt.Errorf("%w: response has no emotionPredictions", ErrClassification)
	}
	if len(pr.EmotionPredictions) == 0 || pr.EmotionPredictions[0].Emotion == nil {
		return nil, ErrInvalidText
	}
	return NewResult(pr.EmotionPredictions[0].Emotion.Scores()), nil
}
