package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sentimenthub/sentimenthub/internal/controllers"
	"github.com/sentimenthub/sentimenthub/internal/server"
	"github.com/sentimenthub/sentimenthub/internal/version"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  `Start the HTTP server exposing review analysis and taxonomy endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config, err := LoadConfig()
	if err != nil {
		return err
	}

	model, err := buildLanguageModel(ctx, config)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(config)
	if err != nil {
		return err
	}

	processor := buildProcessor(model, registry, config)

	reviewController := controllers.NewReviewController(controllers.ReviewControllerDependencies{
		Processor: processor,
		Registry:  registry,
	})

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		ReviewController: reviewController,
		ModelID:          model.ID(),
		Version:          version.GetVersion(),
	})

	log.Info().
		Str("address", config.HTTPAddress).
		Str("model", model.ID()).
		Msg("Starting sentiment hub API")

	if err := app.Listen(config.HTTPAddress, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("Sentiment hub API stopped")
	return nil
}
