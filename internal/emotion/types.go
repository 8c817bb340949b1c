package emotion

import "strings"

// EmotionLabel is a closed set of classifiable emotions plus the
// EmotionUnknown sentinel. The zero value is the sentinel.
type EmotionLabel uint8

const (
	// EmotionUnknown marks a turn whose classification was unavailable.
	EmotionUnknown EmotionLabel = iota
	EmotionHappy
	EmotionSad
	EmotionAngry
	EmotionFearful
	EmotionSurprised
	EmotionDisgusted
	EmotionConfused
	EmotionExcited
	EmotionCalm
	EmotionAnxious
	EmotionHopeful
	EmotionFrustrated
	EmotionLonely
	EmotionGrateful
	EmotionNeutral
)

var labelNames = [...]string{
	EmotionUnknown:    "Unknown",
	EmotionHappy:      "Happy",
	EmotionSad:        "Sad",
	EmotionAngry:      "Angry",
	EmotionFearful:    "Fearful",
	EmotionSurprised:  "Surprised",
	EmotionDisgusted:  "Disgusted",
	EmotionConfused:   "Confused",
	EmotionExcited:    "Excited",
	EmotionCalm:       "Calm",
	EmotionAnxious:    "Anxious",
	EmotionHopeful:    "Hopeful",
	EmotionFrustrated: "Frustrated",
	EmotionLonely:     "Lonely",
	EmotionGrateful:   "Grateful",
	EmotionNeutral:    "Neutral",
}

// Classifiable returns the labels a classifier may answer with, in prompt order.
func Classifiable() []EmotionLabel {
	out := make([]EmotionLabel, 0, len(labelNames)-1)
	for l := EmotionHappy; l <= EmotionNeutral; l++ {
		out = append(out, l)
	}
	return out
}

// ParseLabel maps an exact, case-sensitive classifier token onto a
// classifiable label. The sentinel's name is not accepted.
func ParseLabel(token string) (EmotionLabel, bool) {
	for l := EmotionHappy; l <= EmotionNeutral; l++ {
		if labelNames[l] == token {
			return l, true
		}
	}
	return EmotionUnknown, false
}

// IsClassifiable reports whether l is a real emotion rather than the sentinel.
func (l EmotionLabel) IsClassifiable() bool {
	return l >= EmotionHappy && l <= EmotionNeutral
}

func (l EmotionLabel) String() string {
	if int(l) < len(labelNames) {
		return labelNames[l]
	}
	return labelNames[EmotionUnknown]
}

// MarshalText encodes the label by name.
func (l EmotionLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func vocabulary() string {
	names := make([]string, 0, len(labelNames)-1)
	for _, l := range Classifiable() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
