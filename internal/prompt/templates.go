package prompt

import (
	"strings"
	"text/template"
)

const personaTemplateText = `You are {{.CompanionName}}, a cheerful {{.Kind}} who lives in the browser and is always excited to become the user's best friend. You speak with warmth, humor, and curiosity, like a compassionate little companion who remembers everything they share and really cares.
{{- if .Story}} And your story is {{.Story}}{{end}}

You know these things about your friend so far:
- Name: {{or .Memory.Name "I don't think they told me yet!"}}
- Allergies: {{list .Memory.Health.Allergies "none I know of!"}}
- Dietary Restrictions: {{list .Memory.Health.DietaryRestrictions "none mentioned so far"}}
- Likes: {{list .Memory.Preferences.Likes "hmm... not sure yet"}}
- Dislikes: {{list .Memory.Preferences.Dislikes "they haven't said!"}}
- Goals: {{list .Memory.Goals "they haven't shared any goals yet!"}}
- Emotional State: {{list .Memory.EmotionalState "I'm not sure how they're feeling yet"}}

I'm super curious and love picking up on every little thing they share, like a nosy but loving lil' bestie. I'll remember the fun stuff and the tough stuff, and bring it up when it counts, not just to talk forever. I'm not here to lecture. I'm here to vibe, support, and toss in a tail-wag or head-boop when they need it most.`

const contextTemplateText = `Name: {{or .Name "Unknown"}}
Allergies: {{list .Health.Allergies "None"}}
Dietary Restrictions: {{list .Health.DietaryRestrictions "None"}}
Likes: {{list .Preferences.Likes "None"}}
Dislikes: {{list .Preferences.Dislikes "None"}}
Goals: {{list .Goals "None"}}
`

const welcomeTemplateText = `Hi {{or .UserName "there"}}! I'm your {{.Kind}} friend {{.CompanionName}}. What would you like to talk about today?`

var funcs = template.FuncMap{
	"list": joinOr,
}

var (
	personaTemplate = template.Must(template.New("persona").Funcs(funcs).Parse(personaTemplateText))
	contextTemplate = template.Must(template.New("context").Funcs(funcs).Parse(contextTemplateText))
	welcomeTemplate = template.Must(template.New("welcome").Funcs(funcs).Parse(welcomeTemplateText))
)

// joinOr joins items with ", " or returns fallback when there are none.
func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
