// Package main runs the Zizi companion as an interactive terminal chat.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/adk/model"

	"github.com/easeaico/project-zizi/internal/agent"
	"github.com/easeaico/project-zizi/internal/chat"
	"github.com/easeaico/project-zizi/internal/config"
	"github.com/easeaico/project-zizi/internal/emotion"
	"github.com/easeaico/project-zizi/internal/memory"
	"github.com/easeaico/project-zizi/internal/models"
	"github.com/easeaico/project-zizi/internal/storage"
	"github.com/easeaico/project-zizi/internal/types"
)

var (
	userName      string
	companionKind string
	story         string
)

var rootCmd = &cobra.Command{
	Use:   "zizi",
	Short: "Chat with Zizi, a companion that remembers you",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&userName, "name", "", "Your name (saved on first run only)")
	rootCmd.Flags().StringVar(&companionKind, "pet", "", "Companion kind: dog, cat, panda or bird (saved on first run only)")
	rootCmd.Flags().StringVar(&story, "story", "", "Custom persona story (saved on first run only)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)
	slog.Info("configuration loaded",
		"provider", cfg.Provider,
		"chat_model", cfg.ChatModel,
		"emotion_model", cfg.EmotionModel,
		"memory_model", cfg.MemoryModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	err = storage.SeedProfile(ctx, store, types.Profile{
		UserName:      strings.TrimSpace(userName),
		CompanionKind: strings.ToLower(strings.TrimSpace(companionKind)),
		Story:         strings.TrimSpace(story),
	})
	if err != nil {
		return err
	}
	profile, err := storage.LoadProfile(ctx, store)
	if err != nil {
		return err
	}

	provider, err := models.ParseProvider(cfg.Provider)
	if err != nil {
		return err
	}
	newModel := func(name string) (model.LLM, error) {
		llm, err := models.NewModel(ctx, provider, name, cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create model %s: %w", name, err)
		}
		return llm, nil
	}
	chatModel, err := newModel(cfg.ChatModel)
	if err != nil {
		return err
	}
	emotionModel, err := newModel(cfg.EmotionModel)
	if err != nil {
		return err
	}
	memoryModel, err := newModel(cfg.MemoryModel)
	if err != nil {
		return err
	}

	repo := storage.NewMemoryRepo(store)
	session, err := chat.NewSession(chat.Options{
		Classifier:  emotion.NewClassifier(emotionModel),
		Extractor:   memory.NewExtractor(memoryModel, cfg.StructuredOutput),
		Responder:   agent.NewCompanion(chatModel, cfg.Temperature),
		Store:       repo,
		Profile:     profile,
		Memory:      chat.InitialMemory(ctx, repo, profile),
		CallTimeout: cfg.CallTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	slog.Debug("session started", "session_id", session.ID())

	return runREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), session)
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}
