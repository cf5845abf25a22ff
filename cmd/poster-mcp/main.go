package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/poster-tools-mcp/internal/config"
	"github.com/ironsheep/poster-tools-mcp/internal/logger"
	"github.com/ironsheep/poster-tools-mcp/internal/ocr"
	"github.com/ironsheep/poster-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("poster-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Tesseract:  %s\n", ocr.Version())
			return
		case "--help", "-h", "help":
			fmt.Println("poster-tools-mcp - MCP server that places text on photos")
			fmt.Println()
			fmt.Println("Usage: poster-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  POSTER_MCP_LOG_LEVEL=debug        Log level (trace, debug, info, warn, error)")
			fmt.Println("  POSTER_MCP_LOG_FORMAT=json        Log as JSON instead of console text")
			fmt.Println("  POSTER_MCP_CONFIDENCE=0.5         Minimum detection score")
			fmt.Println("  POSTER_MCP_GRID_SIZE=20           Occupancy grid cells per side")
			fmt.Println("  POSTER_MCP_GRID_MARGIN=1          Border cells kept clear of text")
			fmt.Println("  POSTER_MCP_MIN_WIDTH=200          Minimum text area width in pixels")
			fmt.Println("  POSTER_MCP_MIN_HEIGHT=100         Minimum text area height in pixels")
			fmt.Println("  POSTER_MCP_CENTER_WEIGHT=0.6      Ranking weight for centrality")
			fmt.Println("  POSTER_MCP_SIZE_WEIGHT=0.4        Ranking weight for squareness")
			fmt.Println("  POSTER_MCP_STROKE_THRESHOLD=3     Swatch count above which text is outlined")
			fmt.Println("  POSTER_MCP_MIN_FONT=12            Smallest font size")
			fmt.Println("  POSTER_MCP_MAX_FONT=512           Largest font size")
			fmt.Println("  POSTER_MCP_FIT_MARGIN=0.9         Share of the area text may fill")
			fmt.Println("  POSTER_MCP_OCR_LANG=eng           Tesseract language for avoid_text")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// stdout is for MCP protocol, logs go to stderr
	logger.Init(logger.FromEnv())
	log := logger.Get()

	settings, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Interface("settings", settings).
		Msg("starting poster MCP server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(settings, *logger.Named("server"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("server error")
		stop()
		srv.Close()
		os.Exit(1)
	}
}
