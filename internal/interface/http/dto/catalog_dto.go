package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/catalog"
)

type CreateJobItemRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=150"`
	Slug     string  `json:"slug" binding:"required,min=2,max=180"`
	Kind     string  `json:"kind" binding:"required,oneof=category sub-category"`
	ParentID *string `json:"parentId" binding:"omitempty,uuid"`
}

func (r CreateJobItemRequest) ToInput() catalog.CreateItemInput {
	in := catalog.CreateItemInput{Name: r.Name, Slug: r.Slug, Kind: r.Kind}
	if r.ParentID != nil {
		// format checked by the binding tag
		id := uuid.MustParse(*r.ParentID)
		in.ParentID = &id
	}
	return in
}

type JobItemResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Kind      string     `json:"kind"`
	ParentID  *uuid.UUID `json:"parentId"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

func ToJobItemResponse(item *entity.JobItem) JobItemResponse {
	return JobItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Slug:      item.Slug,
		Kind:      string(item.Kind),
		ParentID:  item.ParentID,
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
	}
}

type CategoryResponse struct {
	JobItemResponse
	Tasks []JobItemResponse `json:"tasks"`
}

func ToCategoryResponses(nodes []catalog.CategoryNode) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(nodes))
	for _, node := range nodes {
		resp := CategoryResponse{
			JobItemResponse: ToJobItemResponse(node.Category),
			Tasks:           make([]JobItemResponse, 0, len(node.Tasks)),
		}
		for _, task := range node.Tasks {
			resp.Tasks = append(resp.Tasks, ToJobItemResponse(task))
		}
		out = append(out, resp)
	}
	return out
}
