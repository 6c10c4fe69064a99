package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/sableworks/grimoire/pkg/cli/config"
	"github.com/sableworks/grimoire/pkg/service/knowledge"
	"github.com/sableworks/grimoire/pkg/usecase"
	"github.com/sableworks/grimoire/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdIngest() *cli.Command {
	var storeCfg config.Store
	var llmCfg config.LLM
	var mitreCfg config.MITRE

	var flags []cli.Flag
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, mitreCfg.Flags()...)

	return &cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Load the MITRE ATT&CK dataset into the knowledge base and exit",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := storeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize vector store")
			}
			defer safe.Close(ctx, store)

			llmClient, err := llmCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM client")
			}

			knowledgeSvc, err := knowledge.New(llmClient, store)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge service")
			}

			uc := usecase.New(knowledgeSvc, llmClient, llmCfg.Model(),
				usecase.WithTechniqueSource(mitreCfg.Configure()),
			)

			result, err := uc.IngestTechniques(ctx)
			if err != nil {
				return goerr.Wrap(err, "ingestion failed")
			}

			color.New(color.FgGreen, color.Bold).Printf("Loaded %d techniques\n", result.Loaded)
			if len(result.Skipped) > 0 {
				color.New(color.FgYellow).Printf("Skipped %d already stored or duplicated IDs\n", len(result.Skipped))
			}

			return nil
		},
	}
}
