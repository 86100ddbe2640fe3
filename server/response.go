package server

import (
	"fmt"
	"strconv"

	"github.com/emotiondetector/emotiondetector/emotion"
)

const (
	InvalidTextMsg        = "Invalid text! Please try again!"
	ClassificationFailMsg = "Unable to analyze the text right now. Please try again later."

	// Scores go in the first five %s, the dominant emotion in the last
	systemResponseMsg = "For the given statement, the system response is: " +
		"'anger': %s, 'disgust': %s, 'fear': %s, 'joy': %s and 'sadness': %s. " +
		"The dominant emotion is <b>%s</b>."
)

// FormatResult renders a result as the sentence shown to users.
func FormatResult(result emotion.Result) string {
	return fmt.Sprintf(systemResponseMsg,
		formatScore(result.Anger),
		formatScore(result.Disgust),
		formatScore(result.Fear),
		formatScore(result.Joy),
		formatScore(result.Sadness),
		result.Dominant,
	)
}

// shortest form that round-trips, e.g. 0.05, 0, 1e-05
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
