// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

// Command openapi2callables parses OpenAPI specifications into tool
// descriptors and serves a small demo API to test against.
//
// Usage:
//
//	openapi2callables parse <spec-url-or-file>   # print the descriptor map
//	openapi2callables specs <spec-url-or-file>   # print LLM tool-call specs
//	openapi2callables serve [--addr :8000]       # host the demo API
//	openapi2callables version
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	o2c "github.com/andrewbolster/openapi2callables"
	"github.com/andrewbolster/openapi2callables/internal/demoserver"
	"github.com/andrewbolster/openapi2callables/internal/metrics"
	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/tool"
)

var (
	// Version is injected at build time.
	Version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch os.Args[1] {
	case "parse":
		os.Exit(runParse(logger, os.Args[2:]))
	case "specs":
		os.Exit(runSpecs(logger, os.Args[2:]))
	case "serve":
		os.Exit(runServe(logger, os.Args[2:]))
	case "version":
		fmt.Println(Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: openapi2callables <parse|specs|serve|version> [args]")
}

func runParse(logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	prefix := fs.String("prefix", "", "restrict parsing to paths with this prefix")
	includeDeprecated := fs.Bool("include-deprecated", false, "include deprecated operations")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: openapi2callables parse [flags] <spec-url-or-file>")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	loader := openapi.NewLoader(openapi.LoaderConfig{Observer: collector}, logger)
	doc, err := loader.Load(ctx, fs.Arg(0))
	if err != nil {
		logger.Error("failed to load spec", zap.Error(err))
		return 1
	}
	operations, err := openapi.NewParser(logger).Parse(doc, openapi.ParseOptions{
		ToolPrefix:        *prefix,
		IncludeDeprecated: *includeDeprecated,
		Observer:          collector,
	})
	if err != nil {
		logger.Error("failed to parse spec", zap.Error(err))
		return 1
	}
	return printJSON(operations)
}

func runSpecs(logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("specs", flag.ExitOnError)
	prefix := fs.String("prefix", "", "restrict parsing to paths with this prefix")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: openapi2callables specs [flags] <spec-url-or-file>")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	registry, err := o2c.Tools(ctx, fs.Arg(0), o2c.Options{
		ToolPrefix:    *prefix,
		ParseObserver: collector,
		Defaults:      tool.APIToolConfig{Observer: collector},
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to build tools", zap.Error(err))
		return 1
	}
	return printJSON(registry.ToolSpecs())
}

func runServe(logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8000", "listen address")
	fs.Parse(args)

	// Parse the builtin document once so /metrics reports real counts
	// for the spec the server exposes.
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	operations, err := openapi.NewParser(logger).Parse(demoserver.Spec(), openapi.ParseOptions{Observer: collector})
	if err != nil {
		logger.Error("failed to parse builtin spec", zap.Error(err))
		return 1
	}
	logger.Info("builtin spec parsed", zap.Int("operations", len(operations)))

	mux := http.NewServeMux()
	mux.Handle("/", demoserver.New(logger).Handler())
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("serving demo API", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func printJSON(payload any) int {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		return 1
	}
	return 0
}
