package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

type JobHandler struct {
	createJobUC     *job.CreateJobUseCase
	listJobsUC      *job.ListJobsUseCase
	getJobUC        *job.GetJobUseCase
	cancelJobUC     *job.CancelJobUseCase
	listOpenJobsUC  *job.ListOpenJobsUseCase
	startWorkUC     *job.StartWorkUseCase
	markCompletedUC *job.MarkCompletedUseCase
}

func NewJobHandler(
	createJobUC *job.CreateJobUseCase,
	listJobsUC *job.ListJobsUseCase,
	getJobUC *job.GetJobUseCase,
	cancelJobUC *job.CancelJobUseCase,
	listOpenJobsUC *job.ListOpenJobsUseCase,
	startWorkUC *job.StartWorkUseCase,
	markCompletedUC *job.MarkCompletedUseCase,
) *JobHandler {
	return &JobHandler{
		createJobUC:     createJobUC,
		listJobsUC:      listJobsUC,
		getJobUC:        getJobUC,
		cancelJobUC:     cancelJobUC,
		listOpenJobsUC:  listOpenJobsUC,
		startWorkUC:     startWorkUC,
		markCompletedUC: markCompletedUC,
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.ValidationFailed(c, "invalid job payload")
		return
	}

	created, err := h.createJobUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToJobResponse(created))
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dto.ListJobsQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.listJobsUC.Execute(c.Request.Context(), q.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToJobResponses(page.Jobs), response.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	j, err := h.getJobUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(j))
}

func (h *JobHandler) CancelJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	j, err := h.cancelJobUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(j))
}

func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	views, err := h.listOpenJobsUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOpenJobResponses(views))
}

func (h *JobHandler) StartWork(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	j, err := h.startWorkUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(j))
}

func (h *JobHandler) CompleteJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	j, err := h.markCompletedUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(j))
}
