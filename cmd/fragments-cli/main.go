package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	fragments "github.com/goliatone/go-fragments"
	"github.com/goliatone/go-fragments/internal/loader"
	"github.com/goliatone/go-fragments/pkg/config"
	"github.com/goliatone/go-fragments/pkg/include"
	"github.com/goliatone/go-fragments/pkg/prompt"
)

func main() {
	page := flag.String("page", "", "HTML page path or URL (stdin if empty)")
	configPath := flag.String("config", "", "YAML configuration file")
	base := flag.String("base", "", "fragment base directory or URL (defaults to the page directory)")
	delimiters := flag.String("delimiters", "", "interpolation delimiter pair, e.g. {} or [[]]")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for expressions that cannot be evaluated")
	verbose := flag.Bool("v", false, "log fragment loads and evaluation failures")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if *delimiters != "" {
		cfg.Delimiters = *delimiters
	}
	if *base != "" {
		cfg.Base = *base
	}
	if cfg.Base == "" && cfg.PageURL == "" && *page != "" {
		cfg.PageURL = *page
	}

	var opts []fragments.Option
	if *verbose {
		opts = append(opts, fragments.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}
	var resolver *prompt.Resolver
	if *interactive {
		resolver = prompt.NewResolver(ctx, nil)
		opts = append(opts, fragments.WithFallback(resolver))
	}

	pipeline, err := fragments.NewPipeline(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to configure pipeline: %v", err)
	}

	input, err := readPage(ctx, *page, cfg.Timeout)
	if err != nil {
		log.Fatalf("Failed to read page: %v", err)
	}

	var out bytes.Buffer
	if err := pipeline.Process(ctx, bytes.NewReader(input), &out); err != nil {
		var loadErr *include.LoadError
		if errors.As(err, &loadErr) {
			log.Fatalf("Failed to load fragment %q: %v", loadErr.Name, loadErr.Err)
		}
		log.Fatalf("Failed to process page: %v", err)
	}
	if resolver != nil && errors.Is(resolver.Err(), prompt.ErrAborted) {
		log.Fatalf("aborted")
	}

	if *output != "" {
		if err := os.WriteFile(*output, out.Bytes(), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", *output)
		return
	}
	if _, err := os.Stdout.Write(out.Bytes()); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func readPage(ctx context.Context, location string, timeout time.Duration) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return io.ReadAll(os.Stdin)
	}
	return loader.New(loader.Options{AllowHTTP: true, RequestTimeout: timeout}).Load(ctx, location)
}
