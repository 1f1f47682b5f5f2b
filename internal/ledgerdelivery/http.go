// Package ledgerdelivery manages delivery layer of the student and parent ledger.
package ledgerdelivery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Settle(ctx context.Context, username, clientIP string, invoiceID uuid.UUID, passcode string) (domain.Receipt, error)
	RecordDirectPayment(ctx context.Context, username, amount, description string) (domain.Transaction, error)
	ListInvoices(ctx context.Context, username string, pendingOnly bool) ([]domain.Invoice, error)
	ListTransactions(ctx context.Context, username string, pageID, pageSize int32) ([]domain.Transaction, error)
	Receipt(ctx context.Context, username, transactionID string) (domain.Receipt, []byte, error)
	Children(ctx context.Context, parent string) ([]domain.StudentSummary, error)
	CheckChild(ctx context.Context, parent, child string) error
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
	now     func() time.Time
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
		now:     time.Now,
	}
}

func status(err error) (int, error) {
	switch err {
	case
		domain.ErrInvalidAmount,
		domain.ErrInvalidInvoice,
		domain.ErrInsufficientBalance,
		domain.ErrNotAStudent:
		return http.StatusBadRequest, err
	case domain.ErrWrongPasscode:
		return http.StatusUnauthorized, err
	case domain.ErrUnauthorized:
		return http.StatusForbidden, err
	case domain.ErrAccountNotFound, domain.ErrTransactionNotFound:
		return http.StatusNotFound, err
	case domain.ErrRateLimited:
		return http.StatusTooManyRequests, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func abort(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	code, err := status(err)
	gctx.JSON(code, web.Error(err))
}

type invoice struct {
	domain.Invoice
	DueSoon bool `json:"due_soon"`
	Overdue bool `json:"overdue"`
}

type listInvoicesRequest struct {
	Pending bool `form:"pending"`
}

func (h *Handler) invoices(gctx *gin.Context, username string) {
	ctx := gctx.Request.Context()

	var req listInvoicesRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	list, err := h.service.ListInvoices(ctx, username, req.Pending)
	if err != nil {
		abort(gctx, err)
		return
	}

	now := h.now()
	result := make([]invoice, 0, len(list))

	for _, inv := range list {
		result = append(result, invoice{
			Invoice: inv,
			DueSoon: inv.Status == domain.InvoiceStatusPending && inv.DueSoon(now),
			Overdue: inv.Overdue(now),
		})
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"invoices": result}})
}

// ListInvoices handles http request to list the invoices of the student.
func (h *Handler) ListInvoices(gctx *gin.Context) {
	h.invoices(gctx, middleware.Payload(gctx).Username)
}

type listTransactionsRequest struct {
	PageID   int32 `form:"page_id" binding:"omitempty,min=1"`
	PageSize int32 `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DefaultPageSize is used when the request does not set page_size.
const DefaultPageSize = 20

func (h *Handler) transactions(gctx *gin.Context, username string) {
	ctx := gctx.Request.Context()

	var req listTransactionsRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	if req.PageID == 0 {
		req.PageID = 1
	}

	if req.PageSize == 0 {
		req.PageSize = DefaultPageSize
	}

	list, err := h.service.ListTransactions(ctx, username, req.PageID, req.PageSize)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"transactions": list}})
}

// ListTransactions handles http request to list the transactions of the student.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	h.transactions(gctx, middleware.Payload(gctx).Username)
}

type settleRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// Settle handles http request to pay an invoice from the balance.
func (h *Handler) Settle(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	invoiceID, err := uuid.Parse(gctx.Param("id"))
	if err != nil {
		abort(gctx, domain.ErrInvalidInvoice)
		return
	}

	var req settleRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	receipt, err := h.service.Settle(ctx, middleware.Payload(gctx).Username, gctx.ClientIP(), invoiceID, req.Passcode)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"receipt": receipt}})
}

type paymentRequest struct {
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description" binding:"max=500"`
}

// CreatePayment handles http request to record a direct payment from the balance.
func (h *Handler) CreatePayment(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req paymentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	tx, err := h.service.RecordDirectPayment(ctx, middleware.Payload(gctx).Username, req.Amount, req.Description)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"transaction": tx}})
}

type receiptURI struct {
	ID string `uri:"id" binding:"required,alphanum,len=8"`
}

// GetReceipt handles http request to download the receipt of a past payment.
func (h *Handler) GetReceipt(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri receiptURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	receipt, doc, err := h.service.Receipt(ctx, middleware.Payload(gctx).Username, uri.ID)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Receipt_%s.pdf"`, receipt.TransactionID))
	gctx.Data(http.StatusOK, "application/pdf", doc)
}

// ListChildren handles http request to list the fee summaries of a parent's children.
func (h *Handler) ListChildren(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	children, err := h.service.Children(ctx, middleware.Payload(gctx).Username)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"children": children}})
}

type childURI struct {
	Username string `uri:"username" binding:"required,alphanum"`
}

func (h *Handler) child(gctx *gin.Context) (string, bool) {
	var uri childURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return "", false
	}

	if err := h.service.CheckChild(gctx.Request.Context(), middleware.Payload(gctx).Username, uri.Username); err != nil {
		abort(gctx, err)
		return "", false
	}

	return uri.Username, true
}

// ListChildInvoices handles http request of a parent to list a child's invoices.
func (h *Handler) ListChildInvoices(gctx *gin.Context) {
	if child, ok := h.child(gctx); ok {
		h.invoices(gctx, child)
	}
}

// ListChildTransactions handles http request of a parent to list a child's transactions.
func (h *Handler) ListChildTransactions(gctx *gin.Context) {
	if child, ok := h.child(gctx); ok {
		h.transactions(gctx, child)
	}
}
