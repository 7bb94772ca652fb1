package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/solvberg/qrsheet/internal/config"
	ioutils "github.com/solvberg/qrsheet/internal/io"
	"github.com/solvberg/qrsheet/internal/model"
	"github.com/solvberg/qrsheet/internal/sheet"
)

func main() {
	// Command line flags
	var (
		templateFlag  = flag.String("template", "", "SVG template with qr-slot placeholders (optional)")
		outSVGFlag    = flag.String("out-svg", "", "Output SVG path, {page} expands to the page number")
		outPDFFlag    = flag.String("out-pdf", "", "Output PDF path")
		noPDFFlag     = flag.Bool("no-pdf", false, "Skip PDF conversion")
		countFlag     = flag.Int("count", 20, "Number of QR-<n> placeholder codes to generate")
		fromFileFlag  = flag.String("from-file", "", "Read payloads from a file, one per line")
		configFlag    = flag.String("config", "qr_config.yaml", "Path to config file")
		logoFlag      = flag.String("logo", "", "Logo image to overlay (overrides config)")
		logoScaleFlag = flag.Float64("logo-scale", 0, "Logo footprint as a fraction of the code (overrides config)")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag    = flag.Bool("dry-run", false, "Encode and report without writing files")
	)

	flag.Parse()

	// Load config
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *templateFlag != "" {
		settings.TemplatePath = *templateFlag
	}
	if *outSVGFlag != "" {
		settings.OutSVG = *outSVGFlag
	}
	if *outPDFFlag != "" {
		settings.OutPDF = *outPDFFlag
	}
	if *noPDFFlag {
		settings.PDF = false
	}
	if *logoFlag != "" {
		settings.Logo = *logoFlag
	}
	if *logoScaleFlag > 0 {
		settings.LogoScale = *logoScaleFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// An explicit -count truncates a payload file; the default only
	// applies to generated sequences.
	countSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "count" {
			countSet = true
		}
	})

	payloads, err := collectPayloads(ctx, settings, *fromFileFlag, *countFlag, countSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading payloads: %v\n", err)
		os.Exit(1)
	}

	// Create builder with progress callback. Zero payloads are not an
	// error; the builder reports that there is nothing to write.
	builder := sheet.NewBuilder(settings, func(event sheet.ProgressEvent) {
		if event.Level == sheet.LevelVerbose && !*verboseFlag {
			return
		}

		switch event.Level {
		case sheet.LevelError:
			fmt.Println("error: " + event.Message)
		case sheet.LevelWarning:
			fmt.Println("warning: " + event.Message)
		case sheet.LevelSuccess:
			fmt.Println("ok: " + event.Message)
		case sheet.LevelInfo:
			fmt.Println(event.Message)
		default:
			fmt.Println("   " + event.Message)
		}
	})

	if err := builder.Initialize(ctx, payloads); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not writing files]")
		for _, line := range builder.Summary() {
			fmt.Println(line)
		}
		return
	}

	if err := builder.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error writing sheets: %v\n", err)
		os.Exit(1)
	}
}

// collectPayloads resolves the run's payloads: an explicit file wins,
// then the configured data string, then generated QR-<n> placeholders.
func collectPayloads(ctx context.Context, settings *config.Settings, fromFile string, count int, countSet bool) ([]model.Payload, error) {
	if fromFile != "" {
		limit := 0
		if countSet {
			limit = count
		}
		lines, err := ioutils.ReadLines(ctx, fromFile, limit)
		if err != nil {
			return nil, err
		}
		payloads := make([]model.Payload, len(lines))
		for i, line := range lines {
			payloads[i] = model.Payload(line)
		}
		return payloads, nil
	}

	if settings.Data != "" && !countSet {
		return []model.Payload{model.Payload(settings.Data)}, nil
	}

	return model.Sequence(count), nil
}
