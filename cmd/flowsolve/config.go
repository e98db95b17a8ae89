// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/flowplan/flow"
	"github.com/katalvlaran/flowplan/snapshot"
)

// Config holds the settings of one flowsolve run. Values come from a .env
// file, then FLOWPLAN_* environment variables, then command-line flags.
type Config struct {
	CatalogPath   string
	GraphPath     string
	OutPath       string
	Format        string
	Compression   string
	MaxIterations int
	Tolerance     float64
	Focus         string
	Verbose       bool
}

// LoadConfig resolves the configuration for args (without the program
// name). envFiles default to ".env"; a missing file is not an error.
func LoadConfig(args []string, output io.Writer, envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	fs := flag.NewFlagSet("flowsolve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.CatalogPath, "catalog", getEnvWithDefault("FLOWPLAN_CATALOG", ""), "catalog data pack (JSON)")
	fs.StringVar(&cfg.GraphPath, "graph", getEnvWithDefault("FLOWPLAN_GRAPH", ""), "network snapshot; format follows the file extension")
	fs.StringVar(&cfg.OutPath, "out", getEnvWithDefault("FLOWPLAN_OUT", ""), "write the solved snapshot here")
	fs.StringVar(&cfg.Format, "format", getEnvWithDefault("FLOWPLAN_FORMAT", "json"), "output codec: json|msgpack")
	fs.StringVar(&cfg.Compression, "compress", getEnvWithDefault("FLOWPLAN_COMPRESS", string(snapshot.None)), "output compression: none|gzip|zstd")
	fs.IntVar(&cfg.MaxIterations, "max-iter", getEnvAsInt("FLOWPLAN_MAX_ITER", flow.MaxIterations), "round ceiling")
	fs.Float64Var(&cfg.Tolerance, "tolerance", getEnvAsFloat("FLOWPLAN_TOLERANCE", flow.Tolerance), "relative convergence threshold")
	fs.StringVar(&cfg.Focus, "focus", getEnvWithDefault("FLOWPLAN_FOCUS", ""), "only report the supply chain of this node")
	fs.BoolVar(&cfg.Verbose, "v", getEnvAsBool("FLOWPLAN_VERBOSE", false), "log every solver round")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks required paths and value ranges.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return errors.New("-catalog (FLOWPLAN_CATALOG) is required")
	}
	if c.GraphPath == "" {
		return errors.New("-graph (FLOWPLAN_GRAPH) is required")
	}
	if _, err := snapshot.CodecByName(c.Format); err != nil {
		return err
	}
	if _, err := snapshot.ParseCompression(c.Compression); err != nil {
		return err
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max-iter must be at least 1, got %d", c.MaxIterations)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}

	return nil
}

// Serializer returns the serializer for the output snapshot.
func (c *Config) Serializer() *snapshot.Serializer {
	codec, _ := snapshot.CodecByName(c.Format)
	comp, _ := snapshot.ParseCompression(c.Compression)

	return snapshot.NewSerializer(snapshot.WithCodec(codec), snapshot.WithCompression(comp))
}

func getEnvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}

	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}

	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}

	return def
}
