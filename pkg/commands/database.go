package commands

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// HandlePurgeCommand processes -purge commands
func HandlePurgeCommand(db *sql.DB, doneOnly, undoneOnly bool, priority int, skipConfirm bool) {
	whereClause := buildPurgeWhereClause(doneOnly, undoneOnly, priority)

	// Show confirmation unless -yes flag is used
	if !skipConfirm {
		fmt.Print("Are you sure you want to delete these notes? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	query := "DELETE FROM text_note"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	result, err := db.Exec(query)
	if err != nil {
		fmt.Printf("Error purging notes: %v\n", err)
		os.Exit(1)
	}

	rowsAffected, _ := result.RowsAffected()
	fmt.Printf("Successfully deleted %d note(s)\n", rowsAffected)
}

// buildPurgeWhereClause builds WHERE clause for purge operations
func buildPurgeWhereClause(doneOnly, undoneOnly bool, priority int) string {
	var conditions []string

	if doneOnly {
		conditions = append(conditions, "is_done = 1")
	} else if undoneOnly {
		conditions = append(conditions, "is_done = 0")
	}

	if priority != 0 {
		conditions = append(conditions, fmt.Sprintf("priority = %d", priority))
	}

	return strings.Join(conditions, " AND ")
}
