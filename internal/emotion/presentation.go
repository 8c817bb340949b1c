package emotion

import "strings"

// Descriptor is how the companion displays an emotion.
type Descriptor struct {
	Kind      string `json:"kind"`
	Color     string `json:"color"`
	Animation string `json:"animation"`
	Mouth     string `json:"mouth"`
	Caption   string `json:"caption"`
}

type style struct {
	color     string
	animation string
	mouth     string
	caption   string
}

const defaultKind = "dog"

var knownKinds = map[string]bool{
	"dog":   true,
	"cat":   true,
	"panda": true,
	"bird":  true,
}

var styles = map[EmotionLabel]style{
	EmotionHappy:      {"#FFD700", "bounce", "smile", "Your pet is wagging with joy!"},
	EmotionSad:        {"#6495ED", "pulse-slow", "frown", "Your pet looks a bit down..."},
	EmotionAngry:      {"#FF4500", "shake", "flat", "Your pet is feeling grumpy!"},
	EmotionFearful:    {"#800080", "tremble", "small", "Your pet seems scared of something."},
	EmotionSurprised:  {"#FF69B4", "pop", "open", "Your pet is totally shocked!"},
	EmotionDisgusted:  {"#7CFC00", "wiggle", "small", "Your pet is just chilling."},
	EmotionConfused:   {"#FF8C00", "spin-slow", "small", "Your pet tilts its head in confusion."},
	EmotionExcited:    {"#FF1493", "jump", "smile", "Your pet is bouncing with excitement!"},
	EmotionCalm:       {"#20B2AA", "float", "small", "Your pet is feeling peaceful."},
	EmotionAnxious:    {"#9370DB", "pulse-fast", "small", "Your pet seems a bit nervous."},
	EmotionHopeful:    {"#00BFFF", "glow", "small", "Your pet looks up with anticipation."},
	EmotionFrustrated: {"#B22222", "vibrate", "flat", "Your pet is feeling impatient."},
	EmotionLonely:     {"#708090", "fade", "frown", "Your pet could use some company."},
	EmotionGrateful:   {"#32CD32", "wave", "small", "Your pet appreciates your attention!"},
	EmotionNeutral:    {"#C0C0C0", "breathe", "small", "Your pet is just chilling."},
}

// Present maps a label and companion kind onto a display descriptor.
// Unknown kinds fall back to dog; the sentinel renders as Neutral.
func Present(label EmotionLabel, companionKind string) Descriptor {
	kind := strings.ToLower(strings.TrimSpace(companionKind))
	if !knownKinds[kind] {
		kind = defaultKind
	}

	s, ok := styles[label]
	if !ok {
		s = styles[EmotionNeutral]
	}
	return Descriptor{
		Kind:      kind,
		Color:     s.color,
		Animation: s.animation,
		Mouth:     s.mouth,
		Caption:   s.caption,
	}
}
