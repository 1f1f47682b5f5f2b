// Package institutiondelivery manages delivery layer of the institution portal.
package institutiondelivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/internal/statement"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Service provides service layer interface needed by institution delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package institutiondelivery
type Service interface {
	IssueInvoice(ctx context.Context, arg domain.IssueInvoiceParams) (domain.Invoice, error)
	Students(ctx context.Context) ([]domain.StudentSummary, error)
	StudentDetails(ctx context.Context, username string) (domain.StudentDetails, error)
	Statement(ctx context.Context, username string) (domain.Statement, error)
	FeeStructure(ctx context.Context) (domain.FeeStructure, error)
	UpdateFee(ctx context.Context, arg domain.UpdateFeeParams) (domain.FeeClass, error)
	SendReminder(ctx context.Context, sender string, arg domain.ReminderParams) (domain.Reminder, error)
	SendBulkReminders(ctx context.Context, sender string, arg domain.BulkReminderParams) (domain.Reminder, error)
	Reminders(ctx context.Context) ([]domain.Reminder, error)
}

// Handler facilitates institution delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns institution handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

// DateLayout is the layout of due dates in requests.
const DateLayout = "2006-01-02"

func respondError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	switch err {
	case
		domain.ErrInvalidAmount,
		domain.ErrInvalidDescription,
		domain.ErrNotAStudent,
		domain.ErrInvalidFeeType,
		domain.ErrFeeNotFound,
		domain.ErrFeeClassNotFound,
		domain.ErrInvalidMessage,
		domain.ErrInvalidReminderTarget,
		domain.ErrNothingDue:
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type issueInvoiceRequest struct {
	Owner       string `json:"owner" binding:"required,alphanum"`
	Description string `json:"description" binding:"required_without=FeeType,max=200"`
	Amount      string `json:"amount" binding:"required_without=FeeType,omitempty,money"`
	FeeType     string `json:"fee_type" binding:"omitempty,max=32"`
	DueDate     string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// IssueInvoice handles http request to issue an invoice to a student.
func (h *Handler) IssueInvoice(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req issueInvoiceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	due, err := time.Parse(DateLayout, req.DueDate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	inv, err := h.service.IssueInvoice(ctx, domain.IssueInvoiceParams{
		Owner:       req.Owner,
		Description: req.Description,
		Amount:      req.Amount,
		FeeType:     req.FeeType,
		DueDate:     due,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"invoice": inv}})
}

// ListStudents handles http request to list the fee summary of every student
// together with the institution totals.
func (h *Handler) ListStudents(gctx *gin.Context) {
	students, err := h.service.Students(gctx.Request.Context())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{
		"students": students,
		"stats":    domain.NewStudentStats(students),
	}})
}

type studentURI struct {
	Username string `uri:"username" binding:"required,alphanum"`
}

// GetStudent handles http request to get the details of a student.
func (h *Handler) GetStudent(gctx *gin.Context) {
	var uri studentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	details, err := h.service.StudentDetails(gctx.Request.Context(), uri.Username)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"student": details}})
}

// ExportStatement handles http request to download a student's statement workbook.
func (h *Handler) ExportStatement(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri studentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	st, err := h.service.Statement(ctx, uri.Username)
	if err != nil {
		respondError(gctx, err)
		return
	}

	var buf bytes.Buffer
	if err := statement.Write(&buf, st); err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("username", uri.Username).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, statement.Filename(uri.Username)))
	gctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetFeeStructure handles http request to get the fee structure.
func (h *Handler) GetFeeStructure(gctx *gin.Context) {
	fees, err := h.service.FeeStructure(gctx.Request.Context())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"fee_structure": fees}})
}

type updateFeeRequest struct {
	Course  string `json:"course" binding:"required,max=100"`
	Year    string `json:"year" binding:"required,max=50"`
	FeeType string `json:"fee_type" binding:"required,max=32"`
	Amount  string `json:"amount" binding:"required,money"`
}

// UpdateFee handles http request to change one fee of a course and year.
func (h *Handler) UpdateFee(gctx *gin.Context) {
	var req updateFeeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	class, err := h.service.UpdateFee(gctx.Request.Context(), domain.UpdateFeeParams{
		Course:  req.Course,
		Year:    req.Year,
		FeeType: req.FeeType,
		Amount:  req.Amount,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"fee_class": class}})
}

type reminderRequest struct {
	Target  string `json:"target" binding:"omitempty,oneof=student parent all"`
	Message string `json:"message" binding:"max=1000"`
}

// SendReminder handles http request to remind a student or its parents of
// pending fees. The body is optional.
func (h *Handler) SendReminder(gctx *gin.Context) {
	var uri studentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	var req reminderRequest
	if err := gctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	r, err := h.service.SendReminder(gctx.Request.Context(), middleware.Payload(gctx).Username, domain.ReminderParams{
		Student: uri.Username,
		Target:  domain.ReminderTarget(req.Target),
		Message: req.Message,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"reminder": r}})
}

type bulkReminderRequest struct {
	Target  string `json:"target" binding:"omitempty,oneof=student parent all"`
	Message string `json:"message" binding:"required,max=1000"`
}

// SendBulkReminder handles http request to remind every student with pending fees.
func (h *Handler) SendBulkReminder(gctx *gin.Context) {
	var req bulkReminderRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.BindError(err))
		return
	}

	r, err := h.service.SendBulkReminders(gctx.Request.Context(), middleware.Payload(gctx).Username, domain.BulkReminderParams{
		Target:  domain.ReminderTarget(req.Target),
		Message: req.Message,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"reminder": r}})
}

// ListReminders handles http request to get the latest reminders.
func (h *Handler) ListReminders(gctx *gin.Context) {
	reminders, err := h.service.Reminders(gctx.Request.Context())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"reminders": reminders}})
}
