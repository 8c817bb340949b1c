// Package chat runs the per-turn conversation pipeline: classify, extract,
// merge, persist and generate, one turn at a time.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/easeaico/project-zizi/internal/emotion"
	"github.com/easeaico/project-zizi/internal/memory"
	"github.com/easeaico/project-zizi/internal/prompt"
	"github.com/easeaico/project-zizi/internal/types"
)

var (
	// ErrTurnInProgress rejects a submission while another turn is running.
	ErrTurnInProgress = errors.New("a turn is already in progress")
	// ErrEmptyUtterance rejects blank input.
	ErrEmptyUtterance = errors.New("utterance is empty")
	// ErrGenerationFailed wraps a reply failure. It is the only turn error
	// surfaced to the user.
	ErrGenerationFailed = errors.New("failed to generate reply")
)

// Classifier labels an utterance. It must not fail.
type Classifier interface {
	Classify(ctx context.Context, text string) emotion.EmotionLabel
}

// Extractor returns raw extraction text for an utterance.
type Extractor interface {
	Extract(ctx context.Context, utterance, currentName string) (string, error)
}

// Responder produces an assistant reply for an ordered message sequence.
type Responder interface {
	Reply(ctx context.Context, messages []types.Message) (string, error)
}

// MemoryStore persists the canonical memory record.
type MemoryStore interface {
	Save(ctx context.Context, m types.CanonicalMemory) error
}

// MemoryLoader reads the stored canonical memory record.
type MemoryLoader interface {
	Load(ctx context.Context) (types.CanonicalMemory, bool, error)
}

// Options configures a Session.
type Options struct {
	Classifier Classifier
	Extractor  Extractor
	Responder  Responder
	Store      MemoryStore

	Profile types.Profile
	Memory  types.CanonicalMemory

	// CallTimeout bounds each outbound call. Zero means no extra bound.
	CallTimeout time.Duration
	// OnStateChange is invoked on every state transition, from the
	// submitting goroutine.
	OnStateChange func(State)
}

// TurnResult describes a completed turn.
type TurnResult struct {
	// Emotion is the raw classification, possibly EmotionUnknown.
	Emotion emotion.EmotionLabel
	Reply   string
	Memory  types.CanonicalMemory
}

// Session holds one user's conversation.
type Session struct {
	id          string
	classifier  Classifier
	extractor   Extractor
	responder   Responder
	store       MemoryStore
	profile     types.Profile
	callTimeout time.Duration
	onState     func(State)

	state atomic.Int32

	mu         sync.RWMutex
	memory     types.CanonicalMemory
	history    []types.Message
	transcript []types.TranscriptEntry
	current    emotion.EmotionLabel
}

// InitialMemory returns the stored record, or a fresh one seeded with the
// profile user name when nothing usable is stored.
func InitialMemory(ctx context.Context, loader MemoryLoader, profile types.Profile) types.CanonicalMemory {
	if loader != nil {
		m, ok, err := loader.Load(ctx)
		if err != nil {
			slog.Warn("failed to load memory, starting fresh", "error", err.Error())
		} else if ok {
			return m
		}
	}
	return types.NewMemory(strings.TrimSpace(profile.UserName))
}

// NewSession seeds the history with the persona prompt and the transcript
// with the welcome message.
func NewSession(opts Options) (*Session, error) {
	if opts.Responder == nil {
		return nil, fmt.Errorf("responder is required")
	}

	mem := opts.Memory.Clone()
	persona, err := prompt.BuildPersona(prompt.PersonaContext{Profile: opts.Profile, Memory: mem})
	if err != nil {
		return nil, fmt.Errorf("failed to build persona: %w", err)
	}
	welcome, err := prompt.WelcomeMessage(opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build welcome message: %w", err)
	}

	s := &Session{
		id:          uuid.NewString(),
		classifier:  opts.Classifier,
		extractor:   opts.Extractor,
		responder:   opts.Responder,
		store:       opts.Store,
		profile:     opts.Profile,
		callTimeout: opts.CallTimeout,
		onState:     opts.OnStateChange,
		memory:      mem,
		history:     []types.Message{{Role: types.RoleSystem, Content: persona}},
		transcript:  []types.TranscriptEntry{{Kind: types.EntryAI, Text: welcome}},
		current:     emotion.EmotionNeutral,
	}
	return s, nil
}

// Submit runs one turn. Only generation failures are returned as turn
// errors; classification, extraction and persistence degrade silently.
func (s *Session) Submit(ctx context.Context, utterance string) (TurnResult, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return TurnResult{}, ErrEmptyUtterance
	}
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateClassifying)) {
		return TurnResult{}, ErrTurnInProgress
	}
	s.notify(StateClassifying)
	defer s.setState(StateIdle)

	log := slog.With("session_id", s.id)
	s.appendTranscript(types.TranscriptEntry{Kind: types.EntryUser, Text: utterance})

	label := s.classify(ctx, utterance)
	if label.IsClassifiable() {
		s.mu.Lock()
		s.current = label
		s.mu.Unlock()
	}

	s.setState(StateExtracting)
	fragment := s.extract(ctx, log, utterance)

	s.setState(StateMerging)
	merged := s.merge(ctx, log, fragment)

	s.setState(StateGenerating)
	reply, err := s.generate(ctx, utterance, merged)
	if err != nil {
		s.setState(StateFailed)
		log.Error("failed to generate reply", "error", err.Error())
		s.appendTranscript(types.TranscriptEntry{Kind: types.EntryError, Text: prompt.ErrorReply})
		return TurnResult{Emotion: label, Memory: merged.Clone()}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	s.mu.Lock()
	s.history = append(s.history,
		types.Message{Role: types.RoleUser, Content: utterance},
		types.Message{Role: types.RoleAssistant, Content: reply},
	)
	s.transcript = append(s.transcript, types.TranscriptEntry{Kind: types.EntryAI, Text: reply})
	s.mu.Unlock()

	log.Debug("turn completed", "emotion", label.String())
	return TurnResult{Emotion: label, Reply: reply, Memory: merged.Clone()}, nil
}

func (s *Session) classify(ctx context.Context, utterance string) emotion.EmotionLabel {
	if s.classifier == nil {
		return emotion.EmotionUnknown
	}
	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	return s.classifier.Classify(callCtx, utterance)
}

func (s *Session) extract(ctx context.Context, log *slog.Logger, utterance string) memory.Fragment {
	if s.extractor == nil {
		return memory.Fragment{}
	}
	s.mu.RLock()
	name := s.memory.Name
	s.mu.RUnlock()

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	raw, err := s.extractor.Extract(callCtx, utterance, name)
	if err != nil {
		log.Warn("memory extraction failed, skipping merge", "error", err.Error())
		return memory.Fragment{}
	}
	return memory.ParseFragment(raw)
}

// merge folds the fragment into memory and persists the result. A failed
// write leaves the in-memory record authoritative.
func (s *Session) merge(ctx context.Context, log *slog.Logger, fragment memory.Fragment) types.CanonicalMemory {
	s.mu.Lock()
	s.memory = memory.Merge(s.memory, fragment)
	merged := s.memory.Clone()
	s.mu.Unlock()

	if s.store == nil {
		return merged
	}
	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	if err := s.store.Save(callCtx, merged); err != nil {
		log.Error("failed to persist memory", "error", err.Error())
	}
	return merged
}

// generate sends the history, the pending utterance and the context summary.
// History is not modified here.
func (s *Session) generate(ctx context.Context, utterance string, mem types.CanonicalMemory) (string, error) {
	s.mu.RLock()
	messages := make([]types.Message, 0, len(s.history)+2)
	messages = append(messages, s.history...)
	s.mu.RUnlock()
	messages = append(messages,
		types.Message{Role: types.RoleUser, Content: utterance},
		types.Message{Role: types.RoleSystem, Content: prompt.ContextMessage(mem)},
	)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	return s.responder.Reply(callCtx, messages)
}

func (s *Session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	s.notify(st)
}

func (s *Session) notify(st State) {
	slog.Debug("session state", "session_id", s.id, "state", st.String())
	if s.onState != nil {
		s.onState(st)
	}
}

func (s *Session) appendTranscript(e types.TranscriptEntry) {
	s.mu.Lock()
	s.transcript = append(s.transcript, e)
	s.mu.Unlock()
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// State returns the current pipeline state.
func (s *Session) State() State { return State(s.state.Load()) }

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool { return s.State() != StateIdle }

func (s *Session) Profile() types.Profile { return s.profile }

// Memory returns a copy of the canonical memory.
func (s *Session) Memory() types.CanonicalMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memory.Clone()
}

// History returns a copy of the conversation history, seed entry included.
func (s *Session) History() []types.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Message(nil), s.history...)
}

// Transcript returns a copy of the display transcript.
func (s *Session) Transcript() []types.TranscriptEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.TranscriptEntry(nil), s.transcript...)
}

// CurrentEmotion is the latest classifiable label seen, Neutral initially.
func (s *Session) CurrentEmotion() emotion.EmotionLabel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
