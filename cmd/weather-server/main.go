package main

import (
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roivaz/mcp-adapters/internal/config"
	"github.com/roivaz/mcp-adapters/internal/logging"
	"github.com/roivaz/mcp-adapters/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:   "weather-server",
		Short: "MCP server exposing National Weather Service tools",
		RunE:  run,
	}

	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().Bool("stdio", false, "Serve over stdio instead of HTTP")

	root.AddCommand(config.NewShowCommand())

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.ForLevel(config.LogLevel()))
	srv := mcp.New(mcp.WeatherConfig(logger))

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	stdio, _ := cmd.Flags().GetBool("stdio")

	return mcp.Serve(srv, host+":"+strconv.Itoa(port), stdio, logger)
}
