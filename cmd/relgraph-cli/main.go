// Command relgraph-cli is a terminal client for the relgraph REST API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relgraphio/relgraph/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient  *client.Client
	flagURL    string
	flagSchema string
	flagFmt    string
)

const defaultURL = "http://localhost:3040"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("relgraph version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("relgraph version %s-dev", version)
}

type configFile struct {
	URL    string `yaml:"url"`
	Schema string `yaml:"schema"`

	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL    string `yaml:"url"`
	Schema string `yaml:"schema"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "relgraph",
		Short:   "relgraph CLI — bounded graph traversal over relational tables",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "relgraph server URL (env: RELGRAPH_URL)")
	rootCmd.PersistentFlags().StringVar(&flagSchema, "schema", "default", "Graph schema name (env: RELGRAPH_SCHEMA)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table")

	rootCmd.AddCommand(newSchemasCmd())
	rootCmd.AddCommand(newTraverseCmd())
	rootCmd.AddCommand(newNeighborsCmd())
	rootCmd.AddCommand(newAggregateCmd())
	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newPathsCmd())
	rootCmd.AddCommand(newCentralityCmd())
	rootCmd.AddCommand(newComponentsCmd())
	rootCmd.AddCommand(newResilienceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("RELGRAPH_URL"); v != "" {
			flagURL = v
		}
	}
	if flagSchema == "default" {
		if v := os.Getenv("RELGRAPH_SCHEMA"); v != "" {
			flagSchema = v
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".relgraph", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}

	resolvedURL := cfg.URL
	resolvedSchema := cfg.Schema
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok {
			if p.URL != "" {
				resolvedURL = p.URL
			}
			if p.Schema != "" {
				resolvedSchema = p.Schema
			}
		}
	}
	if flagURL == defaultURL && resolvedURL != "" {
		flagURL = resolvedURL
	}
	if flagSchema == "default" && resolvedSchema != "" {
		flagSchema = resolvedSchema
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
