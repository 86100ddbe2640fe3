package emotion

type RawDocument struct {
	Text string `json:"text"`
}

type PredictRequest struct {
	RawDocument RawDocument `json:"raw_document"`
}

/*
The upstream only fills Emotion when it could classify the text.
For blank or otherwise unusable input it either answers 400, returns no
predictions, or returns a prediction without an emotion object.
*/
type PredictResponse struct {
	EmotionPredictions []Prediction `json:"emotionPredictions"`
}

type Prediction struct {
	Emotion *EmotionPayload `json:"emotion"`
}

// Pointers so a missing key can be told apart from an explicit 0.
type EmotionPayload struct {
	Anger   *float64 `json:"anger"`
	Disgust *float64 `json:"disgust"`
	Fear    *float64 `json:"fear"`
	Joy     *float64 `json:"joy"`
	Sadness *float64 `json:"sadness"`
}

// Scores coerces the payload into Scores, absent or negative values become 0.
func (p EmotionPayload) Scores() Scores {
	return Scores{
		Anger:   orZero(p.Anger),
		Disgust: orZero(p.Disgust),
		Fear:    orZero(p.Fear),
		Joy:     orZero(p.Joy),
		Sadness: orZero(p.Sadness),
	}
}

func orZero(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
