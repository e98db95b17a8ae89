// SPDX-License-Identifier: MIT

// Command flowsolve loads a catalog data pack and a network snapshot,
// solves the flow equilibrium and prints a per-node, per-item flow table.
//
// Usage:
//
//	flowsolve -catalog pack.json -graph net.json [-out solved.msgpack.zst
//	    -format msgpack -compress zstd] [-max-iter N] [-tolerance T]
//	    [-focus nodeID] [-v]
//
// Every flag has a FLOWPLAN_* environment counterpart, which may also be
// set in a .env file in the working directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/katalvlaran/flowplan/bfs"
	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/flow"
	"github.com/katalvlaran/flowplan/snapshot"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("flowsolve: ")

	cfg, err := LoadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, os.Stdout, log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)); err != nil {
		log.Fatal(err)
	}
}

// run executes one solve. logger receives the solver trace when
// cfg.Verbose is set.
func run(cfg *Config, out io.Writer, logger *log.Logger) error {
	// 1. Inputs
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	g, err := snapshot.ForPath(cfg.GraphPath).LoadFile(cfg.GraphPath)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	// 2. Solve
	var st flow.Stats
	opts := []flow.Option{
		flow.WithMaxIterations(cfg.MaxIterations),
		flow.WithTolerance(cfg.Tolerance),
		flow.WithStats(&st),
	}
	if cfg.Verbose {
		opts = append(opts, flow.WithLogger(logger))
	}
	flow.SolveCatalog(g, cat, opts...)
	if !st.Converged {
		log.Printf("no fixed point after %d rounds (max delta %.3g); reporting the last state", st.Rounds, st.MaxDelta)
	}

	// 3. Report and persist
	var focus *bfs.Result
	if cfg.Focus != "" {
		if focus, err = bfs.SupplyChain(g, nil, cfg.Focus); err != nil {
			return fmt.Errorf("focus: %w", err)
		}
	}
	if err := writeReport(out, g, st, focus); err != nil {
		return err
	}
	if cfg.OutPath == "" {
		return nil
	}
	if err := cfg.Serializer().SaveFile(cfg.OutPath, g); err != nil {
		return fmt.Errorf("save %s: %w", cfg.OutPath, err)
	}
	log.Printf("wrote %s (%s, %s)", cfg.OutPath, cfg.Format, cfg.Compression)

	return nil
}
