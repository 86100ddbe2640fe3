package emotion

type Emotion string

const (
	EmotionAnger   Emotion = "anger"
	EmotionDisgust Emotion = "disgust"
	EmotionFear    Emotion = "fear"
	EmotionJoy     Emotion = "joy"
	EmotionSadness Emotion = "sadness"
)

// Emotions is the fixed order used for iteration and tie-breaks.
var Emotions = []Emotion{
	EmotionAnger,
	EmotionDisgust,
	EmotionFear,
	EmotionJoy,
	EmotionSadness,
}

type Scores struct {
	Anger   float64 `json:"anger"`
	Disgust float64 `json:"disgust"`
	Fear    float64 `json:"fear"`
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
}

type Result struct {
	Scores
	Dominant Emotion `json:"dominant_emotion"`
}

func (s Scores) Get(e Emotion) float64 {
	switch e {
	case EmotionAnger:
		return s.Anger
	case EmotionDisgust:
		return s.Disgust
	case EmotionFear:
		return s.Fear
	case EmotionJoy:
		return s.Joy
	case EmotionSadness:
		return s.Sadness
	default:
		return 0
	}
}

// Dominant returns the emotion with the highest score.
// Ties go to whichever comes first in Emotions, so all-zero scores yield anger.
func (s Scores) Dominant() Emotion {
	dominant := Emotions[0]
	best := s.Get(dominant)
	for _, e := range Emotions[1:] {
		// strictly greater keeps the earlier emotion on a tie
		if score := s.Get(e); score > best {
			dominant = e
			best = score
		}
	}
	return dominant
}

func (s Scores) IsZero() bool {
	return s == Scores{}
}

func NewResult(s Scores) *Result {
	return &Result{
		Scores:   s,
		Dominant: s.Dominant(),
	}
}
