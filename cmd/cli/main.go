package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-dashboard/internal/logger"
	"github.com/dvloznov/finance-dashboard/internal/report"
	"github.com/dvloznov/finance-dashboard/internal/statement"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "process":
		runProcess(log)
	case "categorize":
		runCategorize()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Finance Dashboard CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  process     Extract transactions from statement files and print the reports summary")
	fmt.Println("  categorize  Print the category assigned to a transaction description")
	fmt.Println("  help        Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runProcess(log zerolog.Logger) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	out := fs.String("out", "", "Write the full report bundle (ZIP) to this path")
	fs.Parse(os.Args[2:])

	paths := fs.Args()
	if len(paths) == 0 {
		log.Fatal().Msg("Usage: cli process [-out FILE] STATEMENT...")
	}

	files := make([]statement.StatementFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to read statement file")
		}
		files = append(files, statement.StatementFile{Name: filepath.Base(path), Data: data})
	}

	processor := statement.NewProcessor(log)

	transactions, statuses, err := processor.ProcessBatch(files)
	if err != nil {
		for _, s := range statuses {
			if s.Error != "" {
				log.Warn().Str("filename", s.Filename).Str("error", s.Error).Msg("File failed")
			}
		}
		log.Fatal().Err(err).Msg("Processing failed")
	}

	reports := report.Aggregate(transactions)
	now := time.Now()

	fmt.Println(report.SummaryText(reports, now))

	if *out != "" {
		bundle, err := report.Bundle(reports, now)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build report bundle")
		}
		if err := os.WriteFile(*out, bundle, 0o644); err != nil {
			log.Fatal().Err(err).Str("file", *out).Msg("Failed to write report bundle")
		}
		fmt.Printf("Wrote %s\n", *out)
	}
}

func runCategorize() {
	fs := flag.NewFlagSet("categorize", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	if len(fs.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: cli categorize DESCRIPTION...")
		os.Exit(1)
	}

	for _, desc := range fs.Args() {
		fmt.Printf("%s: %s\n", desc, statement.Categorize(desc))
	}
}
