// Package transport defines the request and response DTOs for the leads module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	FullName  string   `json:"fullName" validate:"required,min=2,max=200"`
	Phone     string   `json:"phone" validate:"required,min=6,max=20"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	Location  *string  `json:"location" validate:"omitempty,max=200"`
	Category  *string  `json:"category" validate:"omitempty,max=50"`
	BudgetMin *float64 `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax *float64 `json:"budgetMax" validate:"omitempty,gte=0"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type UpdateLeadRequest struct {
	FullName  *string  `json:"fullName" validate:"omitempty,min=2,max=200"`
	Phone     *string  `json:"phone" validate:"omitempty,min=6,max=20"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	Location  *string  `json:"location" validate:"omitempty,max=200"`
	Category  *string  `json:"category" validate:"omitempty,max=50"`
	BudgetMin *float64 `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax *float64 `json:"budgetMax" validate:"omitempty,gte=0"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted visit_scheduled negotiating rnr_swo booked lost"`
}

type LeadResponse struct {
	ID               uuid.UUID  `json:"id"`
	FullName         string     `json:"fullName"`
	Phone            string     `json:"phone"`
	Email            *string    `json:"email,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Category         *string    `json:"category,omitempty"`
	BudgetMin        *float64   `json:"budgetMin,omitempty"`
	BudgetMax        *float64   `json:"budgetMax,omitempty"`
	Status           string     `json:"status"`
	LastContactedAt  *time.Time `json:"lastContactedAt,omitempty"`
	NextFollowupDate *string    `json:"nextFollowupDate,omitempty"`
	NextFollowupTime *string    `json:"nextFollowupTime,omitempty"`
	JunkReason       *string    `json:"junkReason,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
}

type ActivityResponse struct {
	ID        uuid.UUID      `json:"id"`
	LeadID    uuid.UUID      `json:"leadId"`
	ActorType string         `json:"actorType"`
	ActorName string         `json:"actorName"`
	EventType string         `json:"eventType"`
	Summary   string         `json:"summary"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}
