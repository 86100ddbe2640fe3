package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emotiondetector/emotiondetector/config"
	"github.com/emotiondetector/emotiondetector/server"
	"github.com/emotiondetector/emotiondetector/service"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the emotion detector web front-end",
	Long:  `Serves the landing page on / and text analysis on /emotionDetector`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnvfile()
		if err != nil {
			return err
		}
		configureLogging(cfg)

		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		secrets, err := newSecretsClient(gCtx, cfg)
		if err != nil {
			return err
		}
		emotionService, err := service.NewEmotionService(gCtx, cfg, secrets)
		if err != nil {
			return err
		}

		frontEnd := server.New(emotionService, cfg.Server.Addr())
		runServer(gCtx, g, "front-end", frontEnd.ListenAndServe, frontEnd.Shutdown)

		// For deployed instances, provide a basic healthcheck endpoint to show it's online
		if cfg.HealthcheckPort > 0 {
			healthchecker := service.NewHealthchecker(cfg.HealthcheckPort)
			runServer(gCtx, g, "healthchecker", healthchecker.Server.ListenAndServe, healthchecker.Server.Shutdown)
		}

		if err := g.Wait(); err != nil {
			log.Errorf("caught error: %v", err)
			return err
		}
		return nil
	},
}

// runServer serves until ctx is done, then shuts the server down.
func runServer(ctx context.Context, g *errgroup.Group, name string, serve func() error, shutdown func(context.Context) error) {
	g.Go(func() error {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		defer log.Infof("exiting %s", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx)
	})
}

// Secrets Manager is only needed when an API key path is configured.
func newSecretsClient(ctx context.Context, cfg config.Config) (service.SecretGetter, error) {
	if cfg.Emotion.SecretPath == "" {
		return nil, nil
	}
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(awsConfig), nil
}
