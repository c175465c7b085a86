package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gayu2216/MarketPulse/internal/authz"
	"github.com/gayu2216/MarketPulse/internal/cqrs"
	"github.com/gayu2216/MarketPulse/internal/middleware"
	"github.com/gayu2216/MarketPulse/internal/models"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	RegisterAccount(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error)
	UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.AccountView, error)
	RegisterUpload(ctx context.Context, cmd cqrs.RegisterUploadCommand) (*models.Upload, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
	ListUploads(ctx context.Context, q cqrs.ListUploadsQuery) ([]models.Upload, error)
}

// AccountDeleter is the deletion controller's surface. Unlike the other
// services it reports through a DeletionResult rather than an error.
type AccountDeleter interface {
	Delete(ctx context.Context, principal authz.Principal, accountID string) models.DeletionResult
}

// AccountHandler routes requests to the command, query or deletion service
// as appropriate.
type AccountHandler struct {
	commands  AccountCommander
	queries   AccountQuerier
	deletions AccountDeleter
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier, deletions AccountDeleter) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries, deletions: deletions}
}

type RegisterAccountRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type UpdateAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

type RegisterUploadRequest struct {
	Filename  string `json:"filename" validate:"required"`
	SizeBytes int64  `json:"sizeBytes" validate:"gte=0"`
}

func (h *AccountHandler) RegisterAccount(c *gin.Context) {
	var req RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.RegisterAccount(c.Request.Context(), cqrs.RegisterAccountCommand{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidUsername),
			errors.Is(err, models.ErrInvalidPassword),
			errors.Is(err, models.ErrPasswordMismatch):
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrDuplicateAccount):
			middleware.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register account")
		}
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountID:        accountID,
		RequestingUserID: principal.UserID,
		RequestingRole:   string(principal.Role),
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountID:        accountID,
		RequestingUserID: principal.UserID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteAccount maps the deletion controller's result onto HTTP status
// codes. A failed cleanup is retryable: the account stays in
// pending_deletion and the same request can be replayed.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	result := h.deletions.Delete(c.Request.Context(), principal, accountID)
	switch result.Outcome {
	case models.DeletionSuccess:
		c.Status(http.StatusNoContent)
	case models.DeletionUnauthorized:
		middleware.RespondWithError(c, http.StatusForbidden, "forbidden")
	case models.DeletionNotFound:
		middleware.RespondWithError(c, http.StatusNotFound, "account not found")
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Account deletion failed",
			"detail":  result.Detail,
		})
	}
}

func (h *AccountHandler) RegisterUpload(c *gin.Context) {
	accountID := c.Param("accountId")
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req RegisterUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	upload, err := h.commands.RegisterUpload(c.Request.Context(), cqrs.RegisterUploadCommand{
		AccountID:        accountID,
		RequestingUserID: principal.UserID,
		Filename:         req.Filename,
		SizeBytes:        req.SizeBytes,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to register upload")
		return
	}

	c.JSON(http.StatusCreated, upload)
}

func (h *AccountHandler) ListUploads(c *gin.Context) {
	accountID := c.Param("accountId")
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	uploads, err := h.queries.ListUploads(c.Request.Context(), cqrs.ListUploadsQuery{
		AccountID:        accountID,
		RequestingUserID: principal.UserID,
		RequestingRole:   string(principal.Role),
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list uploads")
		return
	}

	c.JSON(http.StatusOK, uploads)
}

func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrForbidden):
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAccountNotActive):
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrDuplicateAccount):
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
