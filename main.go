package main

import (
	"context"
	"os"

	"onboarding-console/commands"
)

func main() {
	if err := commands.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
