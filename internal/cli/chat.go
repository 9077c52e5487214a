package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/serenestudio/serenechat/internal/config"
	"github.com/serenestudio/serenechat/internal/logger"
	"github.com/serenestudio/serenechat/internal/tui"
	"github.com/serenestudio/serenechat/pkg/backend"
	"github.com/serenestudio/serenechat/pkg/session"
	"github.com/serenestudio/serenechat/pkg/widget"
)

var newSession bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat panel",
	Long: `Open the chat panel in the terminal. The conversation starts closed;
press enter to open it and fetch the greeting. The session identifier is
persisted in the data directory and reused across runs.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&newSession, "new-session", false, "discard the stored session id and start fresh")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Pretty: cfg.Logging.Pretty,
	}
	if cfg.Logging.File == "" {
		// Without a log file, only errors go to stderr: console logs
		// would fight the chat panel for the terminal.
		logCfg.Console = true
		logCfg.Level = "error"
	}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	lg, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	defer lg.Close()

	store, err := session.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	if newSession {
		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	var httpClient *http.Client
	if cfg.Backend.TimeoutSeconds > 0 {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second}
	}

	client := backend.New(cfg.Backend.BaseURL, httpClient)
	w := widget.New(client, store)

	return tui.Run(w)
}
