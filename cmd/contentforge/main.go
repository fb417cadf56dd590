package main

import (
	"contentforge/cmd/cmd"
	"contentforge/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
