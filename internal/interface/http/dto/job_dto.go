package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

const dateLayout = "2006-01-02"

type CreateJobRequest struct {
	JobTaskID     string  `json:"jobTaskId" binding:"required,uuid"`
	Details       *string `json:"details" binding:"omitempty,max=2000"`
	City          *string `json:"city" binding:"omitempty,max=120"`
	Pincode       *string `json:"pincode" binding:"omitempty,max=20"`
	ScheduledDate *string `json:"scheduledDate" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime *string `json:"scheduledTime" binding:"omitempty,hhmm"`
}

func (r CreateJobRequest) ToInput() (job.CreateJobInput, error) {
	taskID, err := uuid.Parse(r.JobTaskID)
	if err != nil {
		return job.CreateJobInput{}, err
	}
	in := job.CreateJobInput{
		TaskID:        taskID,
		Details:       r.Details,
		City:          r.City,
		Pincode:       r.Pincode,
		ScheduledTime: r.ScheduledTime,
	}
	if r.ScheduledDate != nil {
		date, err := time.Parse(dateLayout, *r.ScheduledDate)
		if err != nil {
			return job.CreateJobInput{}, err
		}
		in.ScheduledDate = &date
	}
	return in, nil
}

type ListJobsQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Status   string `form:"status"`
	Sort     string `form:"sort"`
}

func (q ListJobsQuery) ToInput() job.ListJobsInput {
	return job.ListJobsInput{Status: q.Status, Page: q.Page, PageSize: q.PageSize, Sort: q.Sort}
}

type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	CustomerID       uuid.UUID  `json:"customerId"`
	JobTaskID        uuid.UUID  `json:"jobTaskId"`
	TaskName         string     `json:"taskName,omitempty"`
	CategoryName     string     `json:"categoryName,omitempty"`
	Details          *string    `json:"details"`
	City             *string    `json:"city"`
	Pincode          *string    `json:"pincode"`
	ScheduledDate    *string    `json:"scheduledDate"`
	ScheduledTime    *string    `json:"scheduledTime"`
	Status           string     `json:"status"`
	AssignedVendorID *uuid.UUID `json:"assignedVendorId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func ToJobResponse(j *entity.JobListing) JobResponse {
	resp := JobResponse{
		ID:               j.ID,
		CustomerID:       j.CustomerID,
		JobTaskID:        j.JobItemID,
		Details:          j.Details,
		City:             j.City,
		Pincode:          j.Pincode,
		ScheduledDate:    formatDate(j.ScheduledDate),
		ScheduledTime:    j.ScheduledTime,
		Status:           string(j.Status),
		AssignedVendorID: j.AssignedVendorID,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
	if j.Task != nil {
		resp.TaskName = j.Task.Name
		resp.CategoryName = j.Task.CategoryName()
	}
	return resp
}

func ToJobResponses(jobs []*entity.JobListing) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ToJobResponse(j))
	}
	return out
}

type OpenJobResponse struct {
	ID            uuid.UUID       `json:"id"`
	JobTask       string          `json:"jobTask"`
	Category      string          `json:"category"`
	Owner         ProfileResponse `json:"owner"`
	Details       *string         `json:"details"`
	City          *string         `json:"city"`
	Pincode       *string         `json:"pincode"`
	ScheduledDate *string         `json:"scheduledDate"`
	ScheduledTime *string         `json:"scheduledTime"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func ToOpenJobResponses(views []repository.OpenJobView) []OpenJobResponse {
	out := make([]OpenJobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, OpenJobResponse{
			ID:            v.ID,
			JobTask:       v.TaskName,
			Category:      v.CategoryName,
			Owner:         ToProfileResponse(v.Owner),
			Details:       v.Details,
			City:          v.City,
			Pincode:       v.Pincode,
			ScheduledDate: formatDate(v.ScheduledDate),
			ScheduledTime: v.ScheduledTime,
			CreatedAt:     v.CreatedAt,
		})
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
