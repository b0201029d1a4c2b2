// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/party-positions/auth"
	"github.com/danielhkuo/party-positions/cliparse"
	"github.com/danielhkuo/party-positions/db"
	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/router"
)

func main() {
	var err error

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, err := middleware.NewLogger(os.Stderr, cfg.LogFormat)
	if err != nil {
		slog.Error("Error creating logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if cfg.MintKey != "" {
		fmt.Println(auth.GenerateOperatorKey(cfg.MintKey, cfg.OperatorKeySalt))
		return
	}

	// Load position trees
	catalog, err := positions.LoadCatalog(cfg.TreesDir)
	if err != nil {
		slog.Error("position trees failed to load", "error", err)
		os.Exit(1)
	}
	slog.Info("Position trees loaded", "election_types", catalog.ElectionTypes())

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn.DB); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(dbConn, catalog, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
