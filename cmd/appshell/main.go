package main

import (
	"log"

	"appshell/internal/shell"
)

func main() {
	// A failure here means the shell could not start at all (window
	// creation, context parsing, plugin init); there is nothing to
	// degrade to, so the process aborts.
	if err := shell.Run(); err != nil {
		log.Fatalf("error while running application: %v", err)
	}
}
