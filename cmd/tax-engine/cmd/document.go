package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/facturino/tax-engine/internal/model"
	"github.com/facturino/tax-engine/internal/report"
)

// loadDocument reads a JSON document file into the Document Model and applies
// ingestion normalization (VAT rates to fractions).
func loadDocument(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document JSON in %s: %w", path, err)
	}
	doc.Normalize()
	return &doc, nil
}

// collectXMLFiles expands globs and directories into a flat list of XML files
func collectXMLFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isXMLFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xml"
}

// printReport renders a validation report in the selected output format
func printReport(heading string, rep report.ValidationReport) error {
	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rep)
	}

	fmt.Printf("%s: %d tests, %d passed, %d failed, %d warnings\n",
		heading, rep.TotalTests, rep.Passed, rep.Failed, rep.Warnings)
	for _, r := range rep.Results {
		switch r.Status {
		case report.StatusFail:
			fmt.Printf("  ✗ %2d %s: %s\n", r.TestNumber, r.Name, r.Message)
		case report.StatusWarning:
			fmt.Printf("  ⚠ %2d %s: %s\n", r.TestNumber, r.Name, r.Message)
		default:
			if verbose {
				fmt.Printf("  ✓ %2d %s: %s\n", r.TestNumber, r.Name, r.Message)
			}
		}
		if r.Details != "" && r.Status != report.StatusPass {
			fmt.Printf("       %s\n", r.Details)
		}
	}
	return nil
}
