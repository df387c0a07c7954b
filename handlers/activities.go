// ABOUTME: Activity MCP tool handlers
// ABOUTME: Implements create_activity and list_activities tools
package handlers

import (
	"context"

	"github.com/harperreed/tably/crm"
	"github.com/harperreed/tably/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ActivityHandlers struct {
	svc *crm.Service
}

func NewActivityHandlers(svc *crm.Service) *ActivityHandlers {
	return &ActivityHandlers{svc: svc}
}

type CreateActivityInput struct {
	ContactID    string `json:"contact_id" jsonschema:"Contact record ID the activity belongs to (required)"`
	Type         string `json:"type" jsonschema:"Activity type, e.g. Call, Email, Meeting (required)"`
	Notes        string `json:"notes" jsonschema:"Free-text notes about the activity"`
	NextFollowUp string `json:"next_follow_up,omitempty" jsonschema:"Next follow-up date (any common date format)"`
}

func (h *ActivityHandlers) CreateActivity(ctx context.Context, request *mcp.CallToolRequest, input CreateActivityInput) (*mcp.CallToolResult, models.Activity, error) {
	activity, err := h.svc.CreateActivity(ctx, crm.ActivityInput{
		ContactID:    input.ContactID,
		Type:         input.Type,
		Notes:        input.Notes,
		NextFollowUp: input.NextFollowUp,
	})
	if err != nil {
		return nil, models.Activity{}, err
	}
	return nil, *activity, nil
}

type ListActivitiesInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact record ID to list activities for (required)"`
}

type ListActivitiesOutput struct {
	Activities []models.Activity `json:"activities"`
}

func (h *ActivityHandlers) ListActivities(ctx context.Context, request *mcp.CallToolRequest, input ListActivitiesInput) (*mcp.CallToolResult, ListActivitiesOutput, error) {
	activities, err := h.svc.ListActivities(ctx, input.ContactID)
	if err != nil {
		return nil, ListActivitiesOutput{}, err
	}
	return nil, ListActivitiesOutput{Activities: activities}, nil
}
