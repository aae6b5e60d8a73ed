package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tekkistudio/salesbot/internal/analytics"
	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/chat"
	"github.com/tekkistudio/salesbot/internal/config"
	"github.com/tekkistudio/salesbot/internal/db"
	"github.com/tekkistudio/salesbot/internal/engine"
	"github.com/tekkistudio/salesbot/internal/knowledge"
	"github.com/tekkistudio/salesbot/internal/notify"
	"github.com/tekkistudio/salesbot/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the salesbot chat server",
	Long:  `Starts the HTTP and WebSocket server that powers the chat widget, plus the admin analytics API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		dbPath := filepath.Join(cfg.DataDir, "salesbot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Chatbot copy stored in the database wins over .salesbot.yml, so
		// the widget can be re-worded without a redeploy.
		if err := config.NewOverrideStore(database).ApplyOverrides(cmd.Context(), &cfg.Chatbot); err != nil {
			return fmt.Errorf("loading chatbot config overrides: %w", err)
		}

		catalogStore := catalog.NewStore(database)
		kbStore := knowledge.NewStore(database)

		// Remote delegation is optional at startup: without credentials the
		// bot still answers everything the classifier resolves locally.
		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no LLM provider: %v\n", err)
			fmt.Fprintf(os.Stderr, "Unmatched questions will get the degraded response.\n")
			provider = nil
		}

		var index *knowledge.Index
		if embedder, err := createEmbedderFromConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no embedder: %v (semantic retrieval disabled)\n", err)
		} else if index, err = knowledge.NewIndex(embedder); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: creating semantic index: %v\n", err)
			index = nil
		} else {
			base := knowledge.LoadBase(cmd.Context(), kbStore)
			if err := index.IndexBase(cmd.Context(), base); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: indexing knowledge base: %v\n", err)
			}
		}

		analyticsStore := analytics.NewStore(database)
		sink := analytics.NewSink(analyticsStore)
		defer sink.Close()

		eng := engine.New(engine.Options{
			Catalog:  catalogStore,
			KB:       kbStore,
			Config:   cfg,
			Provider: provider,
			Index:    index,
			Sink:     sink,
			Notifier: notify.NewDispatcher(cfg.NotifyWebhookURL),
		})

		srv := server.New(cfg.Server)
		chat.NewHandler(eng, cfg).RegisterRoutes(srv.Router())
		analyticsStore.RegisterRoutes(srv.Router())

		// Graceful shutdown on SIGINT/SIGTERM.
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			fmt.Fprintf(os.Stderr, "\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
