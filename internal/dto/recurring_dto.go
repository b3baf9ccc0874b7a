package dto

import (
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// CreateTemplateRequest defines the JSON body for creating a recurring template.
// The referenced transaction must be a DRAFT; it is cloned, never posted itself.
type CreateTemplateRequest struct {
	Name                  string    `json:"name" binding:"required,max=100"`
	TemplateTransactionID string    `json:"templateTransactionID" binding:"required"`
	IntervalDays          int       `json:"intervalDays" binding:"required,gt=0"`
	NextRunDate           time.Time `json:"nextRunDate" binding:"required"`
}

// SetTemplateActiveRequest toggles a recurring template on or off.
type SetTemplateActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// TemplateResponse defines the data returned for a recurring template.
type TemplateResponse struct {
	TemplateID            string    `json:"templateID"`
	Name                  string    `json:"name"`
	TemplateTransactionID string    `json:"templateTransactionID"`
	IntervalDays          int       `json:"intervalDays"`
	NextRunDate           time.Time `json:"nextRunDate"`
	IsActive              bool      `json:"isActive"`
}

// ToTemplateResponse converts a domain.RecurringTemplate to TemplateResponse.
func ToTemplateResponse(t *domain.RecurringTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:            t.TemplateID,
		Name:                  t.Name,
		TemplateTransactionID: t.TemplateTransactionID,
		IntervalDays:          t.IntervalDays,
		NextRunDate:           t.NextRunDate,
		IsActive:              t.IsActive,
	}
}

// ToTemplateResponses converts a slice of domain templates.
func ToTemplateResponses(templates []domain.RecurringTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateResponse(&templates[i])
	}
	return responses
}
