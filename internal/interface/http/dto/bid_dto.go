package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

// PlaceBidRequest accepts the amount as a JSON number or a numeric string.
type PlaceBidRequest struct {
	Amount  json.Number `json:"amount" binding:"required,decimal2"`
	Message *string     `json:"message" binding:"omitempty,max=500"`
}

type BidResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	VendorID  uuid.UUID `json:"vendorId"`
	Amount    string    `json:"amount"`
	Message   *string   `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToBidResponse(b *entity.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		JobID:     b.JobID,
		VendorID:  b.VendorID,
		Amount:    b.Amount.String(),
		Message:   b.Message,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type JobBidResponse struct {
	BidResponse
	Vendor ProfileResponse `json:"vendor"`
}

func ToJobBidResponses(views []repository.BidView) []JobBidResponse {
	out := make([]JobBidResponse, 0, len(views))
	for _, v := range views {
		out = append(out, JobBidResponse{
			BidResponse: ToBidResponse(v.Bid),
			Vendor:      ToProfileResponse(v.Vendor),
		})
	}
	return out
}

type BidJobSummary struct {
	Status   string  `json:"status"`
	TaskName string  `json:"taskName"`
	City     *string `json:"city"`
}

type VendorBidResponse struct {
	BidResponse
	Job BidJobSummary `json:"job"`
}

func ToVendorBidResponses(views []repository.VendorBidView) []VendorBidResponse {
	out := make([]VendorBidResponse, 0, len(views))
	for _, v := range views {
		out = append(out, VendorBidResponse{
			BidResponse: ToBidResponse(v.Bid),
			Job: BidJobSummary{
				Status:   string(v.JobStatus),
				TaskName: v.TaskName,
				City:     v.City,
			},
		})
	}
	return out
}
