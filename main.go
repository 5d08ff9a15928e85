package main

import (
	"log"
	"os"

	"github.com/rhajizada/loggy/internal/logging"
)

func main() {
	log.SetFlags(0)

	const format = "{{.Time}} - {{.Level}} - {{.Message}}"

	logger, err := logging.NewFacade(
		logging.WithFile("example.log"),
		logging.WithFormat(format),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	logger.Debug("This is a debug message")
	logger.Info("This is an info message")
	logger.Warning("This is a warning message")
	logger.Error("This is an error message")
	logger.Critical("This is a critical message")

	if err := logger.AddHandler(logging.NewConsoleSink(os.Stderr), logging.LevelWarning, format); err != nil {
		log.Fatal(err)
	}
	logger.Warning("This is a warning message (stderr)")
	logger.Error("This is an error message (stderr)")
}
