package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/easeaico/project-zizi/internal/emotion"
	"github.com/easeaico/project-zizi/internal/prompt"
	"github.com/easeaico/project-zizi/internal/types"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.calls, ",")
}

type fakeClassifier struct {
	log   *callLog
	label emotion.EmotionLabel
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) emotion.EmotionLabel {
	f.log.add("classify")
	return f.label
}

type fakeExtractor struct {
	log      *callLog
	raw      string
	err      error
	gotNames []string
}

func (f *fakeExtractor) Extract(ctx context.Context, utterance, currentName string) (string, error) {
	f.log.add("extract")
	f.gotNames = append(f.gotNames, currentName)
	return f.raw, f.err
}

type fakeResponder struct {
	log      *callLog
	reply    string
	err      error
	block    chan struct{}
	messages [][]types.Message
}

func (f *fakeResponder) Reply(ctx context.Context, messages []types.Message) (string, error) {
	f.log.add("reply")
	f.messages = append(f.messages, append([]types.Message(nil), messages...))
	if f.block != nil {
		<-f.block
	}
	return f.reply, f.err
}

type fakeStore struct {
	log   *callLog
	err   error
	saved []types.CanonicalMemory
}

func (f *fakeStore) Save(ctx context.Context, m types.CanonicalMemory) error {
	f.log.add("save")
	f.saved = append(f.saved, m)
	return f.err
}

type harness struct {
	log        *callLog
	classifier *fakeClassifier
	extractor  *fakeExtractor
	responder  *fakeResponder
	store      *fakeStore
}

func newHarness() *harness {
	log := &callLog{}
	return &harness{
		log:        log,
		classifier: &fakeClassifier{log: log, label: emotion.EmotionHappy},
		extractor:  &fakeExtractor{log: log, raw: `{}`},
		responder:  &fakeResponder{log: log, reply: "Woof! Nice to meet you"},
		store:      &fakeStore{log: log},
	}
}

func (h *harness) session(t *testing.T, mem types.CanonicalMemory, onState func(State)) *Session {
	t.Helper()
	s, err := NewSession(Options{
		Classifier:    h.classifier,
		Extractor:     h.extractor,
		Responder:     h.responder,
		Store:         h.store,
		Profile:       types.Profile{UserName: "Alice", CompanionKind: "dog"},
		Memory:        mem,
		CallTimeout:   time.Second,
		OnStateChange: onState,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewSessionSeedsHistoryAndTranscript(t *testing.T) {
	s := newHarness().session(t, types.NewMemory("Alice"), nil)

	history := s.History()
	if len(history) != 1 || history[0].Role != types.RoleSystem {
		t.Fatalf("expected a single system seed, got %+v", history)
	}
	transcript := s.Transcript()
	if len(transcript) != 1 || transcript[0].Kind != types.EntryAI || !strings.HasPrefix(transcript[0].Text, "Hi Alice!") {
		t.Fatalf("unexpected welcome transcript: %+v", transcript)
	}
	if s.ID() == "" || s.State() != StateIdle || s.CurrentEmotion() != emotion.EmotionNeutral {
		t.Fatalf("unexpected initial session state")
	}
}

func TestNewSessionRequiresResponder(t *testing.T) {
	if _, err := NewSession(Options{}); err == nil {
		t.Fatalf("expected error without responder")
	}
}

func TestSubmitHappyPath(t *testing.T) {
	h := newHarness()
	h.extractor.raw = `Sure! {"name":"Alice","health":{"allergies":["peanuts"]}} hope that helps`

	var states []State
	s := h.session(t, types.NewMemory(""), func(st State) { states = append(states, st) })

	res, err := s.Submit(context.Background(), "  I'm Alice and allergic to peanuts  ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Reply != "Woof! Nice to meet you" || res.Emotion != emotion.EmotionHappy {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Memory.Name != "Alice" || len(res.Memory.Health.Allergies) != 1 {
		t.Fatalf("expected merged memory, got %+v", res.Memory)
	}

	if got := h.log.joined(); got != "classify,extract,save,reply" {
		t.Fatalf("unexpected call order %s", got)
	}
	wantStates := []State{StateClassifying, StateExtracting, StateMerging, StateGenerating, StateIdle}
	if len(states) != len(wantStates) {
		t.Fatalf("unexpected states %v", states)
	}
	for i := range wantStates {
		if states[i] != wantStates[i] {
			t.Fatalf("unexpected states %v", states)
		}
	}

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("expected seed + user + assistant, got %d", len(history))
	}
	if history[1].Role != types.RoleUser || history[1].Content != "I'm Alice and allergic to peanuts" {
		t.Fatalf("unexpected user history entry %+v", history[1])
	}
	if history[2].Role != types.RoleAssistant || history[2].Content != res.Reply {
		t.Fatalf("unexpected assistant history entry %+v", history[2])
	}

	sent := h.responder.messages[0]
	if len(sent) != 3 {
		t.Fatalf("expected seed, user and context messages, got %d", len(sent))
	}
	last := sent[len(sent)-1]
	if last.Role != types.RoleSystem || !strings.HasPrefix(last.Content, prompt.ContextPrefix) {
		t.Fatalf("expected trailing context message, got %+v", last)
	}
	if !strings.Contains(last.Content, "Name: Alice") || !strings.Contains(last.Content, "peanuts") {
		t.Fatalf("context must reflect this turn's merge: %q", last.Content)
	}
	for _, m := range s.History() {
		if strings.HasPrefix(m.Content, prompt.ContextPrefix) {
			t.Fatalf("context message must not be stored in history")
		}
	}

	transcript := s.Transcript()
	if len(transcript) != 3 || transcript[1].Kind != types.EntryUser || transcript[2].Kind != types.EntryAI {
		t.Fatalf("unexpected transcript %+v", transcript)
	}
	if len(h.store.saved) != 1 || h.store.saved[0].Name != "Alice" {
		t.Fatalf("expected merged memory persisted, got %+v", h.store.saved)
	}
	if s.CurrentEmotion() != emotion.EmotionHappy {
		t.Fatalf("expected current emotion Happy")
	}
}

func TestSubmitPassesCurrentNameToExtraction(t *testing.T) {
	h := newHarness()
	s := h.session(t, types.NewMemory("Alice"), nil)
	h.extractor.raw = `{"name":"Bob"}`

	if _, err := s.Submit(context.Background(), "call me Bob"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Submit(context.Background(), "hello again"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if h.extractor.gotNames[0] != "Alice" || h.extractor.gotNames[1] != "Alice" {
		t.Fatalf("expected write-once name passed to extraction, got %v", h.extractor.gotNames)
	}
	if s.Memory().Name != "Alice" {
		t.Fatalf("name must not be overwritten")
	}
}

func TestSubmitExtractionErrorStillReplies(t *testing.T) {
	h := newHarness()
	h.extractor.err = errors.New("upstream 503")
	s := h.session(t, types.NewMemory("Alice"), nil)

	res, err := s.Submit(context.Background(), "I like pizza")
	if err != nil {
		t.Fatalf("extraction failure must not abort the turn: %v", err)
	}
	if res.Reply == "" {
		t.Fatalf("expected a reply")
	}
	if got := s.Memory(); len(got.Preferences.Likes) != 0 {
		t.Fatalf("memory must not grow on extraction failure: %+v", got)
	}
	if len(s.History()) != 3 {
		t.Fatalf("expected history to record the turn")
	}
}

func TestSubmitExtractionWithoutJSON(t *testing.T) {
	h := newHarness()
	h.extractor.raw = "I could not find anything worth remembering."
	s := h.session(t, types.NewMemory(""), nil)

	res, err := s.Submit(context.Background(), "hmm")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Reply == "" || res.Memory.Name != "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSubmitUnknownEmotionKeepsCurrent(t *testing.T) {
	h := newHarness()
	s := h.session(t, types.NewMemory(""), nil)

	h.classifier.label = emotion.EmotionSad
	if _, err := s.Submit(context.Background(), "I'm down"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	h.classifier.label = emotion.EmotionUnknown
	res, err := s.Submit(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Emotion != emotion.EmotionUnknown {
		t.Fatalf("expected raw Unknown in result, got %s", res.Emotion)
	}
	if s.CurrentEmotion() != emotion.EmotionSad {
		t.Fatalf("expected current emotion to stay Sad, got %s", s.CurrentEmotion())
	}
}

func TestSubmitGenerationFailure(t *testing.T) {
	h := newHarness()
	h.responder.err = errors.New("timeout")
	var states []State
	s := h.session(t, types.NewMemory(""), func(st State) { states = append(states, st) })
	h.extractor.raw = `{"preferences":{"likes":["pizza"]}}`

	_, err := s.Submit(context.Background(), "I like pizza")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if len(s.History()) != 1 {
		t.Fatalf("history must be unchanged on generation failure, got %d entries", len(s.History()))
	}

	transcript := s.Transcript()
	errorEntries := 0
	for _, e := range transcript {
		if e.Kind == types.EntryError {
			errorEntries++
			if e.Text != prompt.ErrorReply {
				t.Fatalf("unexpected error copy %q", e.Text)
			}
		}
	}
	if errorEntries != 1 {
		t.Fatalf("expected exactly one error entry, got %d", errorEntries)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected idle after failure, got %s", s.State())
	}
	if len(states) < 2 || states[len(states)-2] != StateFailed || states[len(states)-1] != StateIdle {
		t.Fatalf("expected failed then idle, got %v", states)
	}
	if got := s.Memory(); len(got.Preferences.Likes) != 1 {
		t.Fatalf("merged memory remains authoritative after generation failure: %+v", got)
	}

	h.responder.err = nil
	if _, err := s.Submit(context.Background(), "try again"); err != nil {
		t.Fatalf("expected next turn to succeed: %v", err)
	}
}

func TestSubmitPersistenceFailureIsRecovered(t *testing.T) {
	h := newHarness()
	h.store.err = errors.New("disk full")
	h.extractor.raw = `{"goals":["learn guitar"]}`
	s := h.session(t, types.NewMemory(""), nil)

	res, err := s.Submit(context.Background(), "I want to learn guitar")
	if err != nil {
		t.Fatalf("persistence failure must not fail the turn: %v", err)
	}
	if len(res.Memory.Goals) != 1 || len(s.Memory().Goals) != 1 {
		t.Fatalf("expected in-memory record to keep the merge")
	}

	h.store.err = nil
	if _, err := s.Submit(context.Background(), "hello"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if last := h.store.saved[len(h.store.saved)-1]; len(last.Goals) != 1 {
		t.Fatalf("expected next write to carry the earlier merge, got %+v", last)
	}
}

func TestSubmitRejectsEmptyUtterance(t *testing.T) {
	h := newHarness()
	s := h.session(t, types.NewMemory(""), nil)
	if _, err := s.Submit(context.Background(), "   \n"); !errors.Is(err, ErrEmptyUtterance) {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}
	if h.log.joined() != "" {
		t.Fatalf("no calls expected for empty input, got %s", h.log.joined())
	}
}

func TestSubmitRejectsConcurrentTurn(t *testing.T) {
	h := newHarness()
	h.responder.block = make(chan struct{})
	generating := make(chan struct{}, 1)
	s := h.session(t, types.NewMemory(""), func(st State) {
		if st == StateGenerating {
			generating <- struct{}{}
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "first")
		done <- err
	}()
	<-generating

	if !s.Busy() {
		t.Fatalf("expected session to be busy")
	}
	if _, err := s.Submit(context.Background(), "second"); !errors.Is(err, ErrTurnInProgress) {
		t.Fatalf("expected ErrTurnInProgress, got %v", err)
	}

	close(h.responder.block)
	if err := <-done; err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if len(s.History()) != 3 {
		t.Fatalf("expected only the first turn recorded, got %d", len(s.History()))
	}
}

type fakeLoader struct {
	mem types.CanonicalMemory
	ok  bool
	err error
}

func (f fakeLoader) Load(ctx context.Context) (types.CanonicalMemory, bool, error) {
	return f.mem, f.ok, f.err
}

func TestInitialMemory(t *testing.T) {
	ctx := context.Background()
	profile := types.Profile{UserName: "Alice"}

	stored := types.NewMemory("Stored")
	if got := InitialMemory(ctx, fakeLoader{mem: stored, ok: true}, profile); got.Name != "Stored" {
		t.Fatalf("expected stored memory, got %q", got.Name)
	}
	if got := InitialMemory(ctx, fakeLoader{}, profile); got.Name != "Alice" {
		t.Fatalf("expected seeded name, got %q", got.Name)
	}
	if got := InitialMemory(ctx, fakeLoader{err: errors.New("boom")}, profile); got.Name != "Alice" {
		t.Fatalf("expected seeded name on load error, got %q", got.Name)
	}
}
