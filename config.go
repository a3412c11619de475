package dossier

import (
	"fmt"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/store"
)

// Defaults for the pipeline configuration.
const (
	DefaultDatabasePath = "dossier.db"
	DefaultStorePath    = "docstore"
	DefaultCollection   = "sql_docs"
	DefaultTopK         = 3
)

// Config holds the pipeline configuration. Zero fields are filled with
// defaults by Normalize.
type Config struct {
	DatabasePath string       // SQLite database holding the source rows
	StorePath    string       // directory for the persistent document store
	Collection   string       // document collection name
	Metric       store.Metric // distance metric for new collections
	TopK         int          // context documents retrieved per question
	AI           *ai.Config   // embedding and chat model settings
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: DefaultDatabasePath,
		StorePath:    DefaultStorePath,
		Collection:   DefaultCollection,
		Metric:       store.MetricCosine,
		TopK:         DefaultTopK,
		AI:           ai.DefaultConfig(),
	}
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Metric == "" {
		c.Metric = store.MetricCosine
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.AI == nil {
		c.AI = ai.DefaultConfig()
	}
	c.AI.Normalize()
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if !c.Metric.Valid() {
		return fmt.Errorf("unknown metric %q", c.Metric)
	}
	return c.AI.Validate()
}
