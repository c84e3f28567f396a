package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/catalog"
)

type CatalogHandler struct {
	listTreeUC   *catalog.ListTreeUseCase
	createItemUC *catalog.CreateItemUseCase
}

func NewCatalogHandler(listTreeUC *catalog.ListTreeUseCase, createItemUC *catalog.CreateItemUseCase) *CatalogHandler {
	return &CatalogHandler{listTreeUC: listTreeUC, createItemUC: createItemUC}
}

func (h *CatalogHandler) ListTree(c *gin.Context) {
	nodes, err := h.listTreeUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCategoryResponses(nodes))
}

func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req dto.CreateJobItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.createItemUC.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToJobItemResponse(item))
}
