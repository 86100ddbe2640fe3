package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emotiondetector/emotiondetector/config"
	"github.com/emotiondetector/emotiondetector/emotion"
	"github.com/emotiondetector/emotiondetector/server"
	"github.com/emotiondetector/emotiondetector/service"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyzes a single statement and prints the result",
	Long:  `Sends the given text to the emotion service once and prints the same response the web front-end would render`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnvfile()
		if err != nil {
			return err
		}
		configureLogging(cfg)

		secrets, err := newSecretsClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		emotionService, err := service.NewEmotionService(cmd.Context(), cfg, secrets)
		if err != nil {
			return err
		}

		msg, err := describe(cmd.Context(), emotionService, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func describe(ctx context.Context, analyzer server.Analyzer, text string) (string, error) {
	result, err := analyzer.Analyze(ctx, text)
	if errors.Is(err, emotion.ErrInvalidText) {
		return server.InvalidTextMsg, nil
	}
	if err != nil {
		return "", err
	}
	return server.FormatResult(*result), nil
}
