package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/bid"
)

type BidHandler struct {
	placeBidUC    *bid.PlaceBidUseCase
	listJobBidsUC *bid.ListJobBidsUseCase
	listMyBidsUC  *bid.ListMyBidsUseCase
	acceptBidUC   *bid.AcceptBidUseCase
	rejectBidUC   *bid.RejectBidUseCase
	withdrawBidUC *bid.WithdrawBidUseCase
}

func NewBidHandler(
	placeBidUC *bid.PlaceBidUseCase,
	listJobBidsUC *bid.ListJobBidsUseCase,
	listMyBidsUC *bid.ListMyBidsUseCase,
	acceptBidUC *bid.AcceptBidUseCase,
	rejectBidUC *bid.RejectBidUseCase,
	withdrawBidUC *bid.WithdrawBidUseCase,
) *BidHandler {
	return &BidHandler{
		placeBidUC:    placeBidUC,
		listJobBidsUC: listJobBidsUC,
		listMyBidsUC:  listMyBidsUC,
		acceptBidUC:   acceptBidUC,
		rejectBidUC:   rejectBidUC,
		withdrawBidUC: withdrawBidUC,
	}
}

// PlaceBid answers 201 for a new bid and 200 when an earlier one was
// overwritten.
func (h *BidHandler) PlaceBid(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.placeBidUC.Execute(c.Request.Context(), bid.PlaceBidInput{
		JobID:   jobID,
		Amount:  req.Amount.String(),
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created {
		response.Created(c, dto.ToBidResponse(result.Bid))
		return
	}
	response.Success(c, dto.ToBidResponse(result.Bid))
}

func (h *BidHandler) ListJobBids(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.listJobBidsUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobBidResponses(views))
}

func (h *BidHandler) ListMyBids(c *gin.Context) {
	views, err := h.listMyBidsUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToVendorBidResponses(views))
}

func (h *BidHandler) AcceptBid(c *gin.Context) {
	bidID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.acceptBidUC.Execute(c.Request.Context(), bidID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(b))
}

func (h *BidHandler) RejectBid(c *gin.Context) {
	bidID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.rejectBidUC.Execute(c.Request.Context(), bidID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(b))
}

func (h *BidHandler) WithdrawBid(c *gin.Context) {
	bidID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.withdrawBidUC.Execute(c.Request.Context(), bidID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(b))
}
