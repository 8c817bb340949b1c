package prompt

import (
	"strings"
	"testing"

	"github.com/easeaico/project-zizi/internal/types"
)

func TestBuildContextEmptyMemory(t *testing.T) {
	got := BuildContext(types.NewMemory(""))
	want := "Name: Unknown\nAllergies: None\nDietary Restrictions: None\nLikes: None\nDislikes: None\nGoals: None\n"
	if got != want {
		t.Fatalf("unexpected context:\n%s", got)
	}
}

func TestBuildContextSelectsFixedFields(t *testing.T) {
	m := types.NewMemory("Mia")
	m.Health.Allergies = []string{"peanuts", "shellfish"}
	m.Preferences.Likes = []string{"pizza"}
	m.Goals = []string{"learn guitar"}
	m.Favorites.Books = []string{"Dune"}
	m.MemoryNotes = []string{"secret note"}

	got := BuildContext(m)
	for _, want := range []string{
		"Name: Mia\n",
		"Allergies: peanuts, shellfish\n",
		"Dietary Restrictions: None\n",
		"Likes: pizza\n",
		"Dislikes: None\n",
		"Goals: learn guitar\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in context:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Dune") || strings.Contains(got, "secret note") {
		t.Fatalf("context should only include the fixed selection:\n%s", got)
	}
}

func TestContextMessagePrefix(t *testing.T) {
	if got := ContextMessage(types.NewMemory("")); !strings.HasPrefix(got, "Current user details: Name: Unknown") {
		t.Fatalf("unexpected context message: %q", got)
	}
}

func TestBuildPersona(t *testing.T) {
	m := types.NewMemory("Mia")
	m.Preferences.Likes = []string{"pizza", "jazz"}
	got, err := BuildPersona(PersonaContext{
		Profile: types.Profile{CompanionKind: "cat", Story: "I was found in a teapot."},
		Memory:  m,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{
		"You are Zizi, a cheerful cat",
		"And your story is I was found in a teapot.",
		"- Name: Mia",
		"- Likes: pizza, jazz",
		"- Allergies: none I know of!",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in persona:\n%s", want, got)
		}
	}
}

func TestBuildPersonaDefaults(t *testing.T) {
	got, err := BuildPersona(PersonaContext{Memory: types.NewMemory("")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(got, "a cheerful pet") || !strings.Contains(got, "I don't think they told me yet!") {
		t.Fatalf("unexpected defaults:\n%s", got)
	}
	if strings.Contains(got, "your story is") {
		t.Fatalf("expected story sentence to be omitted:\n%s", got)
	}
}

func TestWelcomeMessage(t *testing.T) {
	got, err := WelcomeMessage(types.Profile{UserName: "Mia", CompanionKind: "panda"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "Hi Mia! I'm your panda friend Zizi. What would you like to talk about today?" {
		t.Fatalf("unexpected welcome: %q", got)
	}
	got, _ = WelcomeMessage(types.Profile{})
	if !strings.HasPrefix(got, "Hi there! I'm your pet friend") {
		t.Fatalf("unexpected default welcome: %q", got)
	}
}

func TestBuildPersonaStoryPlaceholders(t *testing.T) {
	got, err := BuildPersona(PersonaContext{
		Profile: types.Profile{UserName: "Alice", Story: "{{char}} has known {{user}} since puppyhood."},
		Memory:  types.NewMemory(""),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(got, "Zizi has known Alice since puppyhood.") {
		t.Fatalf("expected placeholders filled:\n%s", got)
	}
}
