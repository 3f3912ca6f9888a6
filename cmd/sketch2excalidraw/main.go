package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/inkshape/sketch-to-excalidraw/internal/config"
	"github.com/inkshape/sketch-to-excalidraw/internal/ocr"
	"github.com/inkshape/sketch-to-excalidraw/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sketch2excalidraw %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	input := flag.String("input", "", "Path to a sketch image, or a directory of images with -batch")
	output := flag.String("output", "output", "Directory to write conversion artifacts into")
	configPath := flag.String("config", "sketch2excalidraw.yaml", "Optional YAML config file")
	batch := flag.Bool("batch", false, "Treat -input as a directory and convert every image in it")
	flag.Usage = usage
	flag.Parse()

	if *input == "" {
		usage()
		os.Exit(2)
	}

	// Logging goes to stderr so stdout stays clean for scripting.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A .env file is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	cfg.ApplyEnv()
	// Env overrides are merged after the file, so validate again.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	if version, err := ocr.Version(); err == nil {
		log.Printf("sketch2excalidraw %s (tesseract %s)", Version, version)
	} else {
		log.Printf("sketch2excalidraw %s (tesseract unavailable: %v)", Version, err)
	}

	p := pipeline.New(cfg, nil)

	if *batch {
		result, err := p.Batch(*input, *output)
		if err != nil {
			log.Fatalf("batch error: %v", err)
		}
		log.Printf("batch complete: %d processed, %d failed", result.Processed, result.Failed)
		if result.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	result, err := p.Process(*input, *output)
	if err != nil {
		log.Fatalf("conversion error: %v", err)
	}
	log.Printf("wrote %s and %s (%d shapes, %d text spans, %d elements)",
		result.JSONPath, result.MarkdownPath, result.ShapeCount, result.TextCount, result.ElementCount)
}

func usage() {
	fmt.Fprintln(os.Stderr, "sketch2excalidraw - convert hand-drawn diagrams to Excalidraw documents")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: sketch2excalidraw -input <image> [-output <dir>] [-batch] [-config <file>]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_MASK_SOURCE          Stroke mask source: adaptive, edge, or ink")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_OCR_LANGUAGE         Tesseract language code (default eng)")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_WORKERS              Batch worker count (default: one per CPU)")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_DEBUG_IMAGES=1       Write intermediate debug images")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_NOISE_FLOOR_AREA     Contour noise floor in square pixels")
	fmt.Fprintln(os.Stderr, "  SKETCH2X_APPROX_EPSILON_RATIO Polygon approximation tolerance ratio")
}
