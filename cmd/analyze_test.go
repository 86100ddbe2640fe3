package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emotiondetector/emotiondetector/emotion"
	"github.com/emotiondetector/emotiondetector/server"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*emotion.Result, error) {
	args := m.Called(ctx, text)
	result, _ := args.Get(0).(*emotion.Result)
	return result, args.Error(1)
}

func TestDescribe(t *testing.T) {
	t.Run("prints the formatted result", func(t *testing.T) {
		analyzer := new(MockAnalyzer)
		result := emotion.NewResult(emotion.Scores{Fear: 0.7, Sadness: 0.2})
		analyzer.On("Analyze", context.TODO(), "I am afraid").Return(result, nil)

		msg, err := describe(context.TODO(), analyzer, "I am afraid")
		assert.NoError(t, err)
		assert.Equal(t, server.FormatResult(*result), msg)
		assert.Contains(t, msg, "<b>fear</b>")
	})

	t.Run("prints the invalid text message", func(t *testing.T) {
		analyzer := new(MockAnalyzer)
		analyzer.On("Analyze", context.TODO(), "").Return(nil, emotion.ErrInvalidText)

		msg, err := describe(context.TODO(), analyzer, "")
		assert.NoError(t, err)
		assert.Equal(t, server.InvalidTextMsg, msg)
	})

	t.Run("returns classification failures", func(t *testing.T) {
		analyzer := new(MockAnalyzer)
		analyzer.On("Analyze", context.TODO(), "hi").Return(nil, errors.Join(emotion.ErrClassification, errors.New("timeout")))

		_, err := describe(context.TODO(), analyzer, "hi")
		assert.ErrorIs(t, err, emotion.ErrClassification)
	})
}
