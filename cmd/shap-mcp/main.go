package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/trinity/shap-mcp/internal/attribution"
	"github.com/trinity/shap-mcp/internal/classifier"
	"github.com/trinity/shap-mcp/internal/config"
	"github.com/trinity/shap-mcp/internal/imaging"
	"github.com/trinity/shap-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("shap-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "run":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "Usage: shap-mcp run <config.yaml>")
				os.Exit(2)
			}
			// Run mode logs to stderr too, keeping stdout for results
			log.SetOutput(os.Stderr)
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			if err := runAttribution(os.Args[2]); err != nil {
				log.Fatalf("Run failed: %v", err)
			}
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("SHAP_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("SHAP MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	// The classifier is optional in server mode. Without a model the
	// image and patch tools still work; classify and attribute report
	// an error to the client.
	var cls classifier.Classifier
	modelPath := os.Getenv("SHAP_MCP_MODEL")
	metadataPath := os.Getenv("SHAP_MCP_METADATA")
	if modelPath != "" && metadataPath != "" {
		onnx, err := classifier.NewONNX(modelPath, metadataPath)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		defer onnx.Close()
		cls = onnx
	} else if logLevel == "debug" {
		log.Printf("No model configured; classify/attribute tools disabled")
	}

	srv := server.New(cls)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("shap-mcp - MCP server and CLI for per-patch image attribution")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  shap-mcp                   Start the MCP server on stdin/stdout")
	fmt.Println("  shap-mcp run <config.yaml> Run one attribution and print the result")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SHAP_MCP_MODEL=path.onnx        ONNX model for server mode")
	fmt.Println("  SHAP_MCP_METADATA=path.json     Model metadata for server mode")
	fmt.Println("  SHAP_MCP_LOG_LEVEL=debug        Enable debug logging")
	fmt.Println()
	fmt.Println("In server mode, configure the binary in your MCP client")
	fmt.Println("(e.g., Claude Desktop). Without a model only the image and")
	fmt.Println("patch tools are available.")
}

// runAttribution executes one attribution run described by a YAML config and
// prints a human-readable report to stdout.
func runAttribution(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	img, err := cache.Load(cfg.ImagePath)
	if err != nil {
		return err
	}

	cls, err := classifier.NewONNX(cfg.ModelPath, cfg.MetadataPath)
	if err != nil {
		return err
	}
	defer cls.Close()

	fill, err := resolveFill(cfg.FillColor, img)
	if err != nil {
		return err
	}

	estimator := &attribution.Estimator{
		Classifier:  cls,
		PatchSize:   cfg.PatchSize,
		Samples:     cfg.Samples,
		Seed:        cfg.Seed,
		Workers:     cfg.Workers,
		Fill:        fill,
		TargetClass: cfg.TargetClass,
	}

	log.Printf("Attributing %s: %d patches of %dpx, %d samples, %d workers",
		cfg.ImagePath, patchCount(img, cfg.PatchSize), cfg.PatchSize, cfg.Samples, cfg.Workers)

	result, err := estimator.Estimate(context.Background(), img)
	if err != nil {
		return err
	}

	printReport(result, cfg.TopK)
	return nil
}

func resolveFill(spec string, img image.Image) (color.Color, error) {
	if spec == "mean" {
		return imaging.MeanColor(img), nil
	}
	return imaging.ParseFillColor(spec)
}

func patchCount(img image.Image, patchSize int) int {
	bounds := img.Bounds()
	patches, err := imaging.BuildPatchGrid(bounds.Dx(), bounds.Dy(), patchSize)
	if err != nil {
		return 0
	}
	return len(patches)
}

func printReport(result *attribution.Attribution, topK int) {
	fmt.Printf("Target class:   %s\n", result.TargetClass)
	fmt.Printf("Baseline score: %.4f\n", result.BaselineScore)
	fmt.Printf("Patches:        %d (%dpx)\n", len(result.Patches), result.PatchSize)
	fmt.Printf("Samples:        %d\n", result.Samples)
	fmt.Println()

	summary := result.Summarize()
	fmt.Printf("Values: mean %.4f, stddev %.4f, range [%.4f, %.4f]\n",
		summary.Mean, summary.StdDev, summary.Min, summary.Max)
	fmt.Println()

	ranking := result.Rank()
	if topK > len(ranking) {
		topK = len(ranking)
	}
	fmt.Printf("Top %d patches:\n", topK)
	for rank := 0; rank < topK; rank++ {
		i := ranking[rank]
		p := result.Patches[i]
		fmt.Printf("  %2d. patch %3d at (%d,%d) %dx%d  value %+.4f\n",
			rank+1, i, p.X, p.Y, p.W, p.H, result.Values[i])
	}
}
