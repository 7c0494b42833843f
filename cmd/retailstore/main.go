/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/suparena/retailstore"
	"github.com/suparena/retailstore/config"
)

var (
	versionFlag   = flag.Bool("version", false, "Show version information")
	vFlag         = flag.Bool("v", false, "Show version information (short)")
	provisionFlag = flag.Bool("provision", false, "Create the configured tables, containers and queues")
	configFlag    = flag.String("config", "", "Path to a YAML config file (defaults to environment variables)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := retailstore.GetVersionInfo()
		fmt.Printf("retailstore version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(context.Background()); err != nil {
		slog.Error("retailstore failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fabric, err := retailstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting backends: %w", err)
	}

	if *provisionFlag {
		if err := fabric.Provision(ctx); err != nil {
			return fmt.Errorf("provisioning: %w", err)
		}
		slog.Info("provisioned resources",
			"tables", []string{cfg.CustomerTable, cfg.ProductTable, cfg.OrderTable},
			"containers", []string{cfg.ImageContainer, cfg.ContractContainer},
			"queues", []string{cfg.CustomerQueue, cfg.OrderQueue, cfg.InventoryQueue})
		return nil
	}

	flag.Usage()
	return nil
}
