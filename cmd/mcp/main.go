package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"storefront_ai_server/config"
	"storefront_ai_server/internal/app"
	"storefront_ai_server/internal/logger"
	"storefront_ai_server/internal/mcp"
)

func main() {
	// Command line flags override MCP_TRANSPORT and MCP_ADDRESS.
	transport := flag.String("transport", "", "stdio or http")
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8090'); implies -transport=http")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "error", err)
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	// stdout carries the stdio protocol, so logs go to stderr.
	log := logger.Setup(os.Stderr, "storefront-ai-mcp", cfg.LogLevel)

	generator, err := app.NewGenerator(context.Background(), cfg, log)
	if err != nil {
		log.Error("cannot initialise generator", "error", err)
		os.Exit(1)
	}
	s := mcp.NewServer(generator, log)

	mode, addr := cfg.MCPTransport, cfg.MCPAddress
	if *transport != "" {
		mode = *transport
	}
	if *httpAddr != "" {
		mode, addr = "http", *httpAddr
	}

	if mode == "http" {
		log.Info("starting MCP server", "transport", "http", "address", addr)
		httpServer := server.NewStreamableHTTPServer(s)
		if err := httpServer.Start(addr); err != nil {
			log.Error("MCP HTTP server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	log.Info("starting MCP server", "transport", "stdio")
	if err := server.ServeStdio(s); err != nil {
		log.Error("MCP stdio server stopped", "error", err)
		os.Exit(1)
	}
}
