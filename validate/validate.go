// Command validate provides a small CLI that validates city map JSON files
// in a configs directory. It checks:
//   - JSON structure against the engine's CityMap schema
//   - Filename/city agreement (berlin.json must declare city "berlin")
//   - The engine's cross-consistency rules: line/station back-references,
//     ring length, completion point ordering, transfer hub line counts
//   - Playability basics: every line has a car row worth of stations and
//     at least one transfer hub exists
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nextstop/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateMapFile loads and validates a single city map JSON file.
func validateMapFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var cityMap engine.CityMap
	if err := json.Unmarshal(data, &cityMap); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	stem := strings.TrimSuffix(result.File, ".json")
	if !strings.EqualFold(stem, cityMap.City) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("File %s declares city %q; the manager loads maps by filename", result.File, cityMap.City))
	}

	if err := engine.ValidateCityMap(&cityMap); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	hubs := 0
	rings := 0
	for _, station := range cityMap.Stations {
		if station.IsTransferHub {
			hubs++
		}
	}
	for _, line := range cityMap.Lines {
		if line.IsRing {
			rings++
		}
	}
	if hubs == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No transfer hubs: transfer cards would always score zero connections worth doubling")
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ City: %s", cityMap.City))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Lines: %d (%d ring)", len(cityMap.Lines), rings))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Stations: %d (%d transfer hubs)", len(cityMap.Stations), hubs))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Station rows on sheet: %d", cityMap.TotalLineStations()))
	}

	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting non-zero if any are invalid.
func main() {
	configDir := flag.String("dir", "configs", "Directory containing city map JSON files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No map files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMapFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All city maps are valid!")
	} else {
		fmt.Println("❌ Some city maps have errors")
		os.Exit(1)
	}
}
