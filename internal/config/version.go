package config

// Version is the relgraph binary version.
// Set at build time via: -ldflags "-X github.com/relgraphio/relgraph/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
