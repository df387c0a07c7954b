// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements find_contacts, get_contact, and update_contact tools
package handlers

import (
	"context"

	"github.com/harperreed/tably/crm"
	"github.com/harperreed/tably/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	svc *crm.Service
}

func NewContactHandlers(svc *crm.Service) *ContactHandlers {
	return &ContactHandlers{svc: svc}
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches name and email)"`
}

type FindContactsOutput struct {
	Contacts []models.Contact `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(ctx context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := h.svc.ListContacts(ctx, input.Query)
	if err != nil {
		return nil, FindContactsOutput{}, err
	}
	return nil, FindContactsOutput{Contacts: contacts}, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact record ID (required)"`
}

func (h *ContactHandlers) GetContact(ctx context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, models.Contact, error) {
	if input.ID == "" {
		return nil, models.Contact{}, &crm.BadRequestError{Reason: "id is required"}
	}

	contact, err := h.svc.GetContact(ctx, input.ID)
	if err != nil {
		return nil, models.Contact{}, err
	}
	return nil, *contact, nil
}

type UpdateContactInput struct {
	ID          string `json:"id" jsonschema:"Contact record ID (required)"`
	Name        string `json:"name,omitempty" jsonschema:"Updated contact name"`
	Email       string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone       string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Position    string `json:"position,omitempty" jsonschema:"Updated job position"`
	Status      string `json:"status,omitempty" jsonschema:"Updated pipeline status"`
	LinkedInURL string `json:"linkedin_url,omitempty" jsonschema:"Updated LinkedIn URL"`
	Notes       string `json:"notes" jsonschema:"Updated notes; an empty string clears existing notes"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, models.Contact, error) {
	if input.ID == "" {
		return nil, models.Contact{}, &crm.BadRequestError{Reason: "id is required"}
	}

	contact, err := h.svc.UpdateContact(ctx, input.ID, crm.ContactUpdate{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Position:    input.Position,
		Status:      input.Status,
		LinkedInURL: input.LinkedInURL,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, models.Contact{}, err
	}
	return nil, *contact, nil
}
