// Command reqif exports requirement sources as ReqIF documents.
package main

import (
	"os"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/config/file"
	filesink "github.com/custodia-labs/reqif-cli/internal/adapters/driven/sink/file"
	"github.com/custodia-labs/reqif-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/reqif-cli/internal/connectors"
	"github.com/custodia-labs/reqif-cli/internal/core/services"
	"github.com/custodia-labs/reqif-cli/internal/normalisers"
	"github.com/custodia-labs/reqif-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/reqif-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/reqif-cli/internal/postprocessors"
	"github.com/custodia-labs/reqif-cli/internal/reqifxml"
)

func main() {
	if err := cli.Execute(build); err != nil {
		os.Exit(1)
	}
}

func build(configDir string) (*cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	pipelines := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(pipelines)

	export := services.NewExportService(
		connectors.NewDefaultFactory(),
		normalisers.NewRegistry(plaintext.New(), markdown.New()),
		pipelines,
		reqifxml.NewEncoder(reqifxml.DefaultIndent),
		filesink.New(),
		clock.New,
	)

	return &cli.Services{
		Export:   export,
		Settings: services.NewSettingsService(store),
	}, nil
}
