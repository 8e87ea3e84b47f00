package main

import (
	"fmt"
	"os"

	"mini-storefront/internal/config"
	"mini-storefront/internal/service"
	"mini-storefront/internal/store"
	"mini-storefront/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const defaultTUILogFile = "storefront-tui.log"

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// The terminal belongs to the UI, so logs always go to a file.
			logPath := cfg.Logger.File
			if logPath == "" {
				logPath = defaultTUILogFile
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", logPath, err)
			}
			defer logFile.Close()

			logger := config.NewLoggerTo(cfg.Logger, logFile)
			logger.Info().Msg("starting mini-storefront terminal UI")

			ctx := cmd.Context()

			cat, err := loadCatalog(ctx, cfg, logger)
			if err != nil {
				return err
			}

			backend, closeBackend, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeBackend()

			svc := service.NewStorefrontService(cat, store.New(backend, logger), logger)

			program := tea.NewProgram(tui.New(ctx, svc, store.DefaultKey), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("terminal UI failed: %w", err)
			}

			logger.Info().Msg("terminal UI closed")
			return nil
		},
	}
}
