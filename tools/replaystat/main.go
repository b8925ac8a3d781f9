package main

import (
	"encoding/json"
	"fmt"
	"os"

	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/internal/version"
	"dose-response/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}
	logger.Init()

	log, err := storage.OpenReplay(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "summary":
		printSummary(log)
	case "last":
		last, ok := log.LastVerification()
		if !ok {
			fmt.Println("Replay has no verification snapshots")
			os.Exit(1)
		}
		printJSON(last)
	case "inputs":
		for _, rec := range log.Records {
			if rec.Kind == domain.RecordInput && !rec.Input.IsEmpty() {
				printJSON(rec.Input)
			}
		}
	default:
		printHelp()
	}
}

func printSummary(log *domain.ReplayLog) {
	fmt.Printf("Seed:          %d\n", log.Seed)
	fmt.Printf("Version:       %s", log.Version)
	if log.Version != version.FormatVersion {
		fmt.Printf(" (current %s, replay may desync)", version.FormatVersion)
	}
	fmt.Println()
	fmt.Printf("Build:         %s\n", log.Commit)
	fmt.Printf("Ticks:         %d\n", log.InputCount())
	fmt.Printf("Verifications: %d\n", log.VerificationCount())

	if last, ok := log.LastVerification(); ok {
		fmt.Printf("Final turn:    %d\n", last.Turn)
		fmt.Printf("Chunks:        %d\n", last.ChunkCount)
		fmt.Printf("Player:        %s\n", last.PlayerPos)
		fmt.Printf("Monsters:      %d\n", len(last.Monsters))
	}
}

func printJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printHelp() {
	fmt.Println("Usage: replaystat <command> <replay_file>")
	fmt.Println("Commands:")
	fmt.Println("  summary  - seed, version, build, tick and snapshot counts, final state")
	fmt.Println("  last     - final verification snapshot as JSON")
	fmt.Println("  inputs   - non-empty inputs as JSON lines")
}
