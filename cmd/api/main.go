package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ArkanTsabit123/Student-Management-System/internal/config"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
	"github.com/ArkanTsabit123/Student-Management-System/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "api",
		Usage: "student management HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: func(c *cli.Context) error {
			srv, err := server.NewServer(c.Context, c.String("config"))
			if err != nil {
				logger.Error().Err(err).Msg("Failed to initialize server")
				return err
			}
			return srv.Run()
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
