// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/tokenpkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountWithoutSecrets, error)
	CheckPassword(ctx context.Context, username, password, clientIP string) (domain.AccountWithoutSecrets, error)
	Get(ctx context.Context, username string) (domain.AccountWithoutSecrets, error)
	ChangePassword(ctx context.Context, username, clientIP, current, next string) error
	ChangePasscode(ctx context.Context, username, clientIP, current, next string) error
	SendSupportMessage(ctx context.Context, username, message string) (domain.SupportMessage, error)
	SupportMessages(ctx context.Context) ([]domain.SupportMessage, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service       Service
	tokenMaker    tokenpkg.Maker
	tokenDuration time.Duration
}

// NewHandler returns account handler.
func NewHandler(as Service, tm tokenpkg.Maker, d time.Duration) *Handler {
	return &Handler{
		service:       as,
		tokenMaker:    tm,
		tokenDuration: d,
	}
}

type data struct {
	Account domain.AccountWithoutSecrets `json:"account"`
}

func credentialStatus(err error) int {
	switch err {
	case domain.ErrWrongPassword, domain.ErrWrongPasscode:
		return http.StatusUnauthorized
	case domain.ErrRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrWeakPassword, domain.ErrInvalidPasscodeFormat:
		return http.StatusBadRequest
	case domain.ErrAccountNotFound:
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles http login request and returns the account with an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	account, err := h.service.CheckPassword(ctx, req.Username, req.Password, gctx.ClientIP())
	if err != nil {
		l.Info().Err(err).Str("username", req.Username).Msg("login failed")

		switch err {
		case domain.ErrWrongPassword, domain.ErrRateLimited:
			gctx.JSON(credentialStatus(err), web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(account.Username, string(account.Role), h.tokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: &payload.ExpiredAt,
		Data:                 data{account},
	}

	gctx.JSON(http.StatusOK, res)
}

// Me handles http request to get the authenticated account.
func (h *Handler) Me(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	account, err := h.service.Get(ctx, middleware.Payload(gctx).Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword handles http request to replace the account password.
func (h *Handler) ChangePassword(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req changePasswordRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	username := middleware.Payload(gctx).Username

	err := h.service.ChangePassword(ctx, username, gctx.ClientIP(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		l.Info().Err(err).Send()

		status := credentialStatus(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"message": "password updated"}})
}

type changePasscodeRequest struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode" binding:"required,passcode"`
}

// ChangePasscode handles http request to replace the payment passcode.
func (h *Handler) ChangePasscode(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req changePasscodeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	username := middleware.Payload(gctx).Username

	err := h.service.ChangePasscode(ctx, username, gctx.ClientIP(), req.CurrentPasscode, req.NewPasscode)
	if err != nil {
		l.Info().Err(err).Send()

		status := credentialStatus(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"message": "passcode updated"}})
}

type createRequest struct {
	Username string         `json:"username" binding:"required,alphanum"`
	Password string         `json:"password" binding:"required,min=6"`
	Passcode string         `json:"passcode" binding:"omitempty,passcode"`
	FullName string         `json:"full_name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Role     string         `json:"role" binding:"required,oneof=student parent institution admin"`
	Profile  domain.Profile `json:"profile"`
	Children []string       `json:"children"`
	Balance  string         `json:"balance"`
}

// Create handles http request to provision an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	arg := domain.CreateAccountParams{
		Username: req.Username,
		Password: req.Password,
		Passcode: req.Passcode,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		Profile:  req.Profile,
		Children: req.Children,
		Balance:  req.Balance,
	}

	account, err := h.service.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrUsernameAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case
			domain.ErrInvalidRole,
			domain.ErrWeakPassword,
			domain.ErrInvalidPasscodeFormat,
			domain.ErrInvalidAmount,
			domain.ErrAccountNotFound,
			domain.ErrNotAStudent:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{account}})
}

type supportRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// SendSupportMessage handles http request to leave a message for the admins.
func (h *Handler) SendSupportMessage(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req supportRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	m, err := h.service.SendSupportMessage(ctx, middleware.Payload(gctx).Username, req.Message)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrInvalidMessage:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"support_message": m}})
}

// ListSupportMessages handles http request to read the support inbox.
func (h *Handler) ListSupportMessages(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	messages, err := h.service.SupportMessages(ctx)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"messages": messages}})
}
