package main

import (
	"os"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
