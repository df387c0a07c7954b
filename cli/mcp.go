// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the owner-scoped CRM operations as tools on stdio
package cli

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/crm"
	"github.com/harperreed/tably/handlers"
	"github.com/harperreed/tably/web"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"
)

// MCPCommand starts the MCP server on stdio, scoped to the given operator
// identity. The operator must be on the same allow-list the web gateway
// enforces; every tool call then runs with the same ownership rules as the
// browser endpoints.
func MCPCommand(owner string, allowed web.AllowList) error {
	owner = crm.NormalizeEmail(owner)
	if owner == "" {
		return fmt.Errorf("owner email is required (use --owner)")
	}
	if !allowed.Contains(owner) {
		return fmt.Errorf("owner %q is not in the allowed email list", owner)
	}

	cfg, err := airtable.FromEnv()
	if err != nil {
		return err
	}
	client, err := airtable.NewClient(cfg)
	if err != nil {
		return err
	}
	svc := crm.NewService(client, owner)

	log.Printf("Starting CRM MCP server (session %s, owner %s)...", newSessionID(), owner)

	contactHandlers := handlers.NewContactHandlers(svc)
	activityHandlers := handlers.NewActivityHandlers(svc)
	companyHandlers := handlers.NewCompanyHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tably",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search the caller's contacts by name or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Fetch a single contact by record ID",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update a contact's fields; pass empty notes to clear existing notes",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_activity",
		Description: "Log an activity against one of the caller's contacts",
	}, activityHandlers.CreateActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activities",
		Description: "List activities related to a contact, newest first",
	}, activityHandlers.ListActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_companies",
		Description: "List companies, optionally filtered by name or domain",
	}, companyHandlers.ListCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard_stats",
		Description: "Summarize the caller's contacts, activities, and follow-ups",
	}, companyHandlers.DashboardStats)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}

// newSessionID generates a ULID identifying this MCP server run in logs.
func newSessionID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
