package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tobedone/pkg/database"
)

// HandleExportCommand processes -export commands
func HandleExportCommand(db *sql.DB, filename, exportType string) {
	// Load every note regardless of the UI filters
	notes, err := database.QueryNotes(db, "", database.PriorityLevels, []bool{true, false}, database.SortByCreationTime)
	if err != nil {
		fmt.Printf("Error loading notes: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	var content []byte

	switch exportType {
	case "json":
		content, err = json.MarshalIndent(notes, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling notes to JSON: %v\n", err)
			os.Exit(1)
		}
	case "txt":
		var lines []string
		for _, note := range notes {
			status := " "
			if note.IsDone {
				status = "x"
			}
			lines = append(lines, fmt.Sprintf("- [%s] (%d) %s: %s", status, note.Priority, note.Title, note.Content))
		}
		content = []byte(strings.Join(lines, "\n"))
	default:
		fmt.Printf("Unknown export type: %s\n", exportType)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d note(s) to %s\n", len(notes), filename)
}
