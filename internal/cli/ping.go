package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/serenestudio/serenechat/internal/config"
	"github.com/serenestudio/serenechat/pkg/backend"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the chat backend is reachable",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}

	client := backend.New(cfg.Backend.BaseURL, &http.Client{Timeout: 10 * time.Second})

	status, err := client.Health(context.Background())
	if err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Backend.BaseURL, err)
	}

	fmt.Printf("%s: %s (version %s)\n", cfg.Backend.BaseURL, status.Status, status.Version)
	return nil
}
