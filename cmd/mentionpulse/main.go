package main

import (
	"mentionpulse/cmd/handlers"
	"mentionpulse/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
