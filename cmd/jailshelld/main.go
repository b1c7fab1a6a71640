// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command jailshelld serves the emulated shell over HTTP for browser
// terminals. One shared session backs all requests.
package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"jailshell/internal/config"
	"jailshell/internal/server"
	"jailshell/internal/shell"
)

var (
	debugMode  = flag.Bool("d", false, "Enable debug mode")
	logFile    = flag.String("log-file", "", "Log file path (stderr by default)")
	configPath = flag.String("config", "config.json", "Configuration file path")
	listenAddr = flag.String("listen", "", "Listen address (overrides config)")
	rootDir    = flag.String("root", "", "Jail root directory (overrides config)")
)

func main() {
	flag.Parse()

	logger := initLogger(*debugMode, *logFile)
	logger.Info().Msg("Jailshelld starting")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *rootDir != "" {
		cfg.RootDir = *rootDir
	}
	shell.ConfigureLimits(cfg.ShellLimits())

	sess, err := shell.NewSession(cfg.RootDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create session")
	}

	srv := server.New(sess, logger)
	logger.Info().Str("addr", cfg.ListenAddr).Msg("Listening")
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func initLogger(debug bool, logFilePath string) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var output io.Writer = os.Stderr
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = file
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
