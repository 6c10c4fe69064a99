package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sableworks/grimoire/pkg/cli/config"
	httpctrl "github.com/sableworks/grimoire/pkg/controller/http"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/service/knowledge"
	"github.com/sableworks/grimoire/pkg/usecase"
	"github.com/sableworks/grimoire/pkg/utils/logging"
	"github.com/sableworks/grimoire/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var variantName string
	var topK int
	var requestTimeout time.Duration
	var storeCfg config.Store
	var llmCfg config.LLM
	var mitreCfg config.MITRE

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GRIMOIRE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "prompt-variant",
			Usage:       "Prompt framing (general or security-expert)",
			Value:       types.VariantSecurityExpert.String(),
			Sources:     cli.EnvVars("GRIMOIRE_PROMPT_VARIANT"),
			Destination: &variantName,
		},
		&cli.IntFlag{
			Name:        "top-k",
			Usage:       "Number of context documents retrieved per question",
			Value:       3,
			Sources:     cli.EnvVars("GRIMOIRE_TOP_K"),
			Destination: &topK,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Per-request deadline covering the store and generation calls (0 disables)",
			Value:       2 * time.Minute,
			Sources:     cli.EnvVars("GRIMOIRE_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, mitreCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			variant, err := types.ParsePromptVariant(variantName)
			if err != nil {
				return err
			}
			if topK < 1 {
				return goerr.New("top-k must be positive", goerr.V("top_k", topK))
			}

			store, err := storeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize vector store")
			}
			defer safe.Close(ctx, store)

			llmClient, err := llmCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM client")
			}
			logging.Default().Info("Ollama client configured", "llm", &llmCfg)

			knowledgeSvc, err := knowledge.New(llmClient, store)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge service")
			}

			uc := usecase.New(knowledgeSvc, llmClient, llmCfg.Model(),
				usecase.WithTechniqueSource(mitreCfg.Configure()),
				usecase.WithPromptVariant(variant),
				usecase.WithTopK(topK),
			)

			httpHandler, err := httpctrl.New(uc, httpctrl.WithRequestTimeout(requestTimeout))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"variant", variant,
					"top_k", topK,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
