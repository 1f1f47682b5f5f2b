// Package paymentdelivery manages delivery layer of gateway payments.
package paymentdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Service provides service layer interface needed by payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package paymentdelivery
type Service interface {
	Gateways() []domain.Gateway
	CreateOrder(ctx context.Context, payer, gatewayID, beneficiary, amount string) (domain.Order, error)
	Confirm(ctx context.Context, payer, gatewayID, reference string, proof domain.PaymentProof) (domain.Transaction, error)
}

// Handler facilitates payment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns payment handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

func respondError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	switch err {
	case
		domain.ErrInvalidAmount,
		domain.ErrUnsupportedGateway,
		domain.ErrPaymentNotVerified:
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	case domain.ErrUnauthorized:
		gctx.JSON(http.StatusForbidden, web.Error(err))
		return
	case domain.ErrOrderNotFound, domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

// ListGateways handles http request to list the configured payment gateways.
func (h *Handler) ListGateways(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"gateways": h.service.Gateways()}})
}

type createOrderRequest struct {
	Amount      string `json:"amount" binding:"required,money"`
	Beneficiary string `json:"beneficiary" binding:"omitempty,alphanum"`
}

// CreateOrder handles http request to create an order on a gateway.
func (h *Handler) CreateOrder(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createOrderRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	order, err := h.service.CreateOrder(ctx, middleware.Payload(gctx).Username, gctx.Param("gateway"), req.Beneficiary, req.Amount)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"order": order}})
}

type confirmRequest struct {
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Confirm handles http request to verify a gateway payment and credit it.
func (h *Handler) Confirm(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req confirmRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	proof := domain.PaymentProof{PaymentID: req.PaymentID, Signature: req.Signature}

	tx, err := h.service.Confirm(ctx, middleware.Payload(gctx).Username, gctx.Param("gateway"), gctx.Param("reference"), proof)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"transaction": tx}})
}
