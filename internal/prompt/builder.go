// Package prompt renders persona, context and transcript copy for the companion.
package prompt

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/easeaico/project-zizi/internal/types"
	"github.com/easeaico/project-zizi/internal/utils"
)

// ContextPrefix introduces the per-request memory summary.
const ContextPrefix = "Current user details: "

// ErrorReply is shown in the transcript when no reply could be generated.
const ErrorReply = "Oops, my senses got tangled! Try again?"

// PersonaContext contains all inputs for the seed system prompt.
type PersonaContext struct {
	Profile types.Profile
	Memory  types.CanonicalMemory
}

// BuildPersona renders the seed system entry from the companion persona and
// the memory snapshot at session start.
func BuildPersona(ctx PersonaContext) (string, error) {
	data := struct {
		CompanionName string
		Kind          string
		Story         string
		Memory        types.CanonicalMemory
	}{
		CompanionName: types.CompanionName,
		Kind:          companionKind(ctx.Profile),
		Story:         utils.ReplacePlaceholders(strings.TrimSpace(ctx.Profile.Story), types.CompanionName, userName(ctx)),
		Memory:        ctx.Memory,
	}
	return render(personaTemplate, data)
}

// BuildContext summarises the subset of memory used for every reply: name,
// allergies, dietary restrictions, likes, dislikes and goals.
func BuildContext(memory types.CanonicalMemory) string {
	out, err := render(contextTemplate, memory)
	if err != nil {
		slog.Error("failed to build memory context", "error", err.Error())
		return ""
	}
	return out
}

// ContextMessage wraps BuildContext for injection as a system message.
func ContextMessage(memory types.CanonicalMemory) string {
	return ContextPrefix + BuildContext(memory)
}

// WelcomeMessage is the first transcript entry of a session.
func WelcomeMessage(profile types.Profile) (string, error) {
	data := struct {
		CompanionName string
		Kind          string
		UserName      string
	}{
		CompanionName: types.CompanionName,
		Kind:          companionKind(profile),
		UserName:      strings.TrimSpace(profile.UserName),
	}
	return render(welcomeTemplate, data)
}

// userName prefers the remembered name over the onboarding one.
func userName(ctx PersonaContext) string {
	if ctx.Memory.Name != "" {
		return ctx.Memory.Name
	}
	if name := strings.TrimSpace(ctx.Profile.UserName); name != "" {
		return name
	}
	return "friend"
}

func companionKind(profile types.Profile) string {
	if kind := strings.TrimSpace(profile.CompanionKind); kind != "" {
		return kind
	}
	return types.DefaultCompanionKind
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
