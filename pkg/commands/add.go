package commands

import (
	"fmt"
	"os"

	"tobedone/pkg/controller"
	"tobedone/pkg/database"
	"tobedone/pkg/repository"
)

// HandleAddNote processes the -add command. The text becomes the note
// content; the title is derived from it the same way the editor does.
func HandleAddNote(repo *repository.Repository, text string, priority int) {
	editor := controller.NewAdd(repo)
	editor.SetContent(text)
	if priority != 0 {
		if priority < database.PriorityCritical || priority > database.PriorityTrivial {
			fmt.Printf("Invalid priority %d: must be 1-5\n", priority)
			os.Exit(1)
		}
		editor.SetPriority(priority)
	}

	if err := editor.Commit(); err != nil {
		fmt.Printf("Error adding note: %v\n", err)
		os.Exit(1)
	}
}
