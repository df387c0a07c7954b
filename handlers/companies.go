// ABOUTME: Company and dashboard MCP tool handlers
// ABOUTME: Implements list_companies and dashboard_stats tools
package handlers

import (
	"context"

	"github.com/harperreed/tably/crm"
	"github.com/harperreed/tably/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CompanyHandlers struct {
	svc *crm.Service
}

func NewCompanyHandlers(svc *crm.Service) *CompanyHandlers {
	return &CompanyHandlers{svc: svc}
}

type ListCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches name and domain)"`
}

type ListCompaniesOutput struct {
	Companies []models.Company `json:"companies"`
}

func (h *CompanyHandlers) ListCompanies(ctx context.Context, request *mcp.CallToolRequest, input ListCompaniesInput) (*mcp.CallToolResult, ListCompaniesOutput, error) {
	companies, err := h.svc.ListCompanies(ctx, input.Query)
	if err != nil {
		return nil, ListCompaniesOutput{}, err
	}
	return nil, ListCompaniesOutput{Companies: companies}, nil
}

type DashboardStatsInput struct{}

func (h *CompanyHandlers) DashboardStats(ctx context.Context, request *mcp.CallToolRequest, input DashboardStatsInput) (*mcp.CallToolResult, models.DashboardStats, error) {
	stats, err := h.svc.DashboardStats(ctx)
	if err != nil {
		return nil, models.DashboardStats{}, err
	}
	return nil, *stats, nil
}
