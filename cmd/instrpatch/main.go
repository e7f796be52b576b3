package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/kvit-s/instrpatch/internal/config"
	"github.com/kvit-s/instrpatch/internal/diffview"
	"github.com/kvit-s/instrpatch/internal/enhance"
	"github.com/kvit-s/instrpatch/internal/logging"
	"github.com/kvit-s/instrpatch/internal/tui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	inPath := flag.String("in", "", "original instruction file (required)")
	patchPath := flag.String("patch", "-", "patch file, or '-' to read from stdin")
	outPath := flag.String("out", "", "output file (default: input name with detected extension)")
	radius := flag.Int("radius", 0, "override anchor search radius")
	logPath := flag.String("log", "", "log file path (overrides config)")
	review := flag.Bool("review", false, "interactively review the diff before writing")
	noColor := flag.Bool("no-color", false, "disable colored output")
	quiet := flag.Bool("quiet", false, "suppress diff and summary output")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	if *inPath == "" {
		flag.Usage()
		log.Fatal("missing required -in flag")
	}

	cfg := loadConfig(*configPath)
	if *radius > 0 {
		cfg.Engine.SearchRadius = *radius
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}
	if *noColor || !cfg.Output.GetColor() {
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	original, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("Failed to read instruction: %v", err)
	}
	patchText, err := readPatch(*patchPath)
	if err != nil {
		log.Fatalf("Failed to read patch: %v", err)
	}

	svc := enhance.NewService(cfg, logger)
	res, err := svc.Enhance(filepath.Base(*inPath), string(original), patchText)
	if err != nil {
		// Expected, recoverable rejection: the message tells the user to retry.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	colored := diffview.Colorize(res.Diff)
	if *review {
		accepted, err := tui.Review(filepath.Base(*inPath), colored)
		if err != nil {
			log.Fatalf("Review failed: %v", err)
		}
		if !accepted {
			fmt.Fprintln(os.Stderr, "Enhancement rejected; nothing written.")
			os.Exit(1)
		}
	} else if !*quiet && res.Diff != "" {
		fmt.Println(colored)
	}

	dest := *outPath
	if dest == "" {
		dest = withExtension(*inPath, res.Extension)
	}
	if err := os.WriteFile(dest, []byte(res.Instruction), 0644); err != nil {
		log.Fatalf("Failed to write result: %v", err)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Applied %d hunk(s) to %s\n", res.Hunks, dest)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func readPatch(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// withExtension swaps path's extension for the detected one.
func withExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
