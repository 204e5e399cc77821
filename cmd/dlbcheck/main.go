// Command dlbcheck loads a dialogue project from disk, links it, and
// reports every parse error, reference problem, and warning it finds. It
// is a read-only validator, distinct from a document-conversion tool:
// it never rewrites anything, it only checks.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dialoguebranch/dlb-core-go/internal/config"
	"github.com/dialoguebranch/dlb-core-go/pkg/logger"
	"github.com/dialoguebranch/dlb-core-go/pkg/project"
)

const version = "1.0.0"

func main() {
	var (
		projectDir  string
		configFile  string
		strict      bool
		format      string
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&projectDir, "project", "", "Project directory to check")
	flag.StringVar(&projectDir, "p", "", "Project directory to check (shorthand)")
	flag.StringVar(&configFile, "config", "", "Path to a dlbcheck.yaml config file")
	flag.BoolVar(&strict, "strict", false, "Treat unresolved node references as errors")
	flag.StringVar(&format, "log-format", "text", "Log format (text, json)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showHelp, "h", false, "Show help (shorthand)")
	flag.Parse()

	if showVersion {
		fmt.Printf("dlbcheck v%s\n", version)
		os.Exit(0)
	}
	if showHelp || projectDir == "" {
		printHelp()
		os.Exit(0)
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if strict {
		cfg.Parser.StrictReferenceResolution = true
	}
	if format != "" {
		cfg.Logging.Format = format
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(logger.LoggerConfig{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	loader := project.NewDirectoryFileLoader(projectDir)
	linker := project.NewLinker(loader, cfg.Parser, log)

	result, err := linker.Link()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to link project: %v\n", err)
		os.Exit(1)
	}

	exitCode := report(result)
	os.Exit(exitCode)
}

func report(result *project.ParserResult) int {
	fmt.Printf("Run %s\n", result.RunID)
	fmt.Printf("Dialogues: %d\n", len(result.Project.Dialogues))
	fmt.Printf("Translation languages: %d\n", len(result.Project.TranslationLanguages()))

	for fd, errs := range result.Errors {
		for _, e := range errs {
			fmt.Printf("ERROR [%s/%s] %s\n", fd.LanguageCode, fd.FilePath, e.Error())
		}
	}
	for _, p := range result.Problems {
		fmt.Printf("PROBLEM %s\n", p.Error())
	}
	for _, w := range result.Warnings {
		fmt.Printf("WARNING %s\n", w)
	}

	if result.HasErrors() {
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Printf(`dlbcheck v%s

Usage:
  dlbcheck -project <dir>

Options:
  -p, -project <dir>   Project directory to check (required)
  -config <file>       Path to a dlbcheck.yaml config file
  -strict              Treat unresolved node references as errors
  -log-format <fmt>    Log format (text, json)
  -v, -version         Show version
  -h, -help            Show this help
`, version)
}
