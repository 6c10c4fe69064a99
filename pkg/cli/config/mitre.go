package config

import (
	"github.com/sableworks/grimoire/pkg/service/mitre"
	"github.com/urfave/cli/v3"
)

// MITRE holds CLI flags for the ATT&CK dataset source
type MITRE struct {
	sourceURL string
}

// Flags returns CLI flags for MITRE dataset configuration
func (m *MITRE) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mitre-source-url",
			Usage:       "URL of the MITRE ATT&CK STIX bundle",
			Value:       mitre.DefaultSourceURL,
			Sources:     cli.EnvVars("GRIMOIRE_MITRE_SOURCE_URL"),
			Destination: &m.sourceURL,
		},
	}
}

// Configure creates the dataset service from the configured flags
func (m *MITRE) Configure() *mitre.Service {
	return mitre.New(mitre.WithSourceURL(m.sourceURL))
}
