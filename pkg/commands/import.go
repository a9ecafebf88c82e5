package commands

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"tobedone/pkg/controller"
	"tobedone/pkg/database"
	"tobedone/pkg/repository"
)

// Optional "(N)" priority marker after the checkbox
var priorityMarker = regexp.MustCompile(`^\((\d)\)\s*`)

// HandleImportCommand processes -import commands. Lines look like the
// txt export format: "- [ ] (3) Title: content" with the priority and
// title parts optional.
func HandleImportCommand(repo *repository.Repository, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	lines := strings.Split(string(content), "\n")
	var notesAdded int

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if text == "" {
			continue
		}

		isDone := false
		if strings.HasPrefix(text, "[x]") {
			isDone = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "[x]"))
		} else if strings.HasPrefix(text, "[ ]") {
			text = strings.TrimSpace(strings.TrimPrefix(text, "[ ]"))
		}

		priority := database.PriorityDefault
		if match := priorityMarker.FindStringSubmatch(text); match != nil {
			if p, err := strconv.Atoi(match[1]); err == nil && p >= database.PriorityCritical && p <= database.PriorityTrivial {
				priority = p
			}
			text = strings.TrimSpace(text[len(match[0]):])
		}

		// The first ": " separates title from content. A title that
		// itself contains ": " cannot round-trip through the txt
		// format; the flag help documents this.
		title := ""
		body := text
		if idx := strings.Index(text, ": "); idx > 0 {
			title = text[:idx]
			body = strings.TrimSpace(text[idx+2:])
		} else {
			title = controller.DeriveTitle(text)
		}

		now := controller.Now()
		_, err := repo.Add(database.Note{
			Title:        strings.TrimSpace(title),
			Content:      body,
			IsDone:       isDone,
			LastUpdated:  now,
			CreationTime: now,
			Priority:     priority,
		})
		if err != nil {
			fmt.Printf("Error adding note '%s': %v\n", title, err)
			continue
		}
		notesAdded++
	}

	fmt.Printf("Successfully imported %d note(s) from %s\n", notesAdded, filename)
}
