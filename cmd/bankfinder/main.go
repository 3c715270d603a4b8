package main

import (
	"os"

	"github.com/MrSnakeDoc/bankfinder/cmd/bankfinder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
