// ABOUTME: Entry point for the CRM gateway and MCP server
// ABOUTME: Routes to serve or mcp commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harperreed/tably/cli"
	"github.com/harperreed/tably/web"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	envFile := flag.String("env-file", "", "Path to .env file (default: ./.env if present)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("tably version %s\n", version)
		os.Exit(0)
	}

	// Load environment before anything reads AIRTABLE_* or TABLY_* values.
	// A missing .env is fine; the variables may already be in the process
	// environment.
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		cfg, err := web.LoadGatewayConfig()
		if err != nil {
			log.Fatalf("Failed to load gateway config: %v", err)
		}
		if err := cli.ServeCommand(cfg, commandArgs); err != nil {
			log.Fatalf("Gateway failed: %v", err)
		}

	case "mcp":
		fs := flag.NewFlagSet("mcp", flag.ExitOnError)
		owner := fs.String("owner", os.Getenv("TABLY_OWNER_EMAIL"), "Operator email (must be on the allow-list)")
		if err := fs.Parse(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

		cfg, err := web.LoadGatewayConfig()
		if err != nil {
			log.Fatalf("Failed to load gateway config: %v", err)
		}
		if err := cli.MCPCommand(*owner, web.NewAllowList(cfg.AllowedEmails)); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`tably v%s - CRM gateway over a remote tabular store

USAGE:
  tably [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --env-file <path>      Load environment from a specific .env file

COMMANDS:
  serve                  Start the JSON API gateway for the browser UI
    --port <n>              Listen port (default: 8080)
    --dev                   Development mode (no Secure flag on cookies)

  mcp                    Start the MCP server on stdio
    --owner <email>         Operator email (must be on the allow-list)

ENVIRONMENT:
  AIRTABLE_BASE_ID       Remote base identifier (required)
  AIRTABLE_API_KEY       Remote API bearer token (required)
  TABLY_ALLOWED_EMAILS   Comma-separated login allow-list
  TABLY_PORT             Gateway port override
  TABLY_DEV              Development mode override
  TABLY_OWNER_EMAIL      Default MCP operator email

EXAMPLES:
  # Start the gateway
  tably serve --port 8080

  # Start the MCP server for an operator
  tably mcp --owner sales@example.com

`, version)
}
