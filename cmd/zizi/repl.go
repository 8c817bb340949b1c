package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/easeaico/project-zizi/internal/chat"
	"github.com/easeaico/project-zizi/internal/emotion"
	"github.com/easeaico/project-zizi/internal/types"
)

// runREPL reads one utterance per line until EOF, /quit or cancellation.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, session *chat.Session) error {
	for _, entry := range session.Transcript() {
		printEntry(out, entry)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/memory":
			raw, err := json.MarshalIndent(session.Memory(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode memory: %w", err)
			}
			fmt.Fprintln(out, string(raw))
			continue
		case "/mood":
			printMood(out, session, session.CurrentEmotion())
			continue
		}

		res, err := session.Submit(ctx, line)
		if errors.Is(err, chat.ErrGenerationFailed) {
			transcript := session.Transcript()
			printEntry(out, transcript[len(transcript)-1])
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "(%v)\n", err)
			continue
		}
		printMood(out, session, res.Emotion)
		printEntry(out, types.TranscriptEntry{Kind: types.EntryAI, Text: res.Reply})
	}
}

func printEntry(out io.Writer, entry types.TranscriptEntry) {
	who := types.CompanionName
	if entry.Kind == types.EntryUser {
		who = "You"
	}
	fmt.Fprintf(out, "%s: %s\n", who, entry.Text)
}

// printMood shows the presentation for label. The sentinel renders as Neutral.
func printMood(out io.Writer, session *chat.Session, label emotion.EmotionLabel) {
	d := emotion.Present(label, session.Profile().CompanionKind)
	fmt.Fprintf(out, "[%s] %s (%s, %s)\n", d.Kind, d.Caption, d.Animation, d.Color)
}
