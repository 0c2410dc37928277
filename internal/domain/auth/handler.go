package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
	"evorgs/internal/pkg/response"
	"evorgs/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterUser godoc
// @Summary	Register a new user account
// @Tags	Auth
// @Accept	json
// @Produce	json
// @Param	body	body	RegisterUserRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/auth/register/user [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	u, err := h.service.RegisterUser(c.Request.Context(), req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// RegisterVendor godoc
// @Summary	Register a new vendor account (pending admin approval)
// @Tags	Auth
// @Accept	json
// @Produce	json
// @Param	body	body	RegisterVendorRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/auth/register/vendor [post]
func (h *Handler) RegisterVendor(c *gin.Context) {
	var req RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	v, err := h.service.RegisterVendor(c.Request.Context(), req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v)
}

// Login godoc
// @Summary	Log in as user, vendor or admin
// @Tags	Auth
// @Accept	json
// @Produce	json
// @Param	role	path	string	true	"user | vendor | admin"
// @Param	body	body	LoginRequest	true	"credentials"
// @Success	200	{object}	map[string]interface{}
// @Router	/auth/login/{role} [post]
func (h *Handler) Login(c *gin.Context) {
	role := c.Param("role")
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), role, req.Email, req.Password)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// RequestOTP godoc
// @Summary	Request an email verification code
// @Tags	Auth
// @Accept	json
// @Produce	json
// @Param	role	path	string	true	"user | vendor"
// @Param	body	body	RequestOTPRequest	true	"payload"
// @Success	202	{object}	map[string]interface{}
// @Router	/auth/otp/{role}/request [post]
func (h *Handler) RequestOTP(c *gin.Context) {
	role := c.Param("role")
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	if err := h.service.RequestOTP(c.Request.Context(), role, req.Email); err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"status": "accepted"})
}

// VerifyOTP godoc
// @Summary	Confirm an email verification code
// @Tags	Auth
// @Accept	json
// @Produce	json
// @Param	role	path	string	true	"user | vendor"
// @Param	body	body	VerifyOTPRequest	true	"payload"
// @Success	200	{object}	map[string]interface{}
// @Router	/auth/otp/{role}/verify [post]
func (h *Handler) VerifyOTP(c *gin.Context) {
	role := c.Param("role")
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	if err := h.service.VerifyOTP(c.Request.Context(), role, req.Email, req.Code); err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "verified"})
}

// Me godoc
// @Summary	Current principal's profile
// @Tags	Auth
// @Security	BearerAuth
// @Produce	json
// @Success	200	{object}	map[string]interface{}
// @Router	/me [get]
func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var (
		data any
		err  error
	)
	switch p.Role {
	case middleware.RoleUser:
		data, err = h.service.GetUser(c.Request.Context(), p.ID)
	case middleware.RoleVendor:
		data, err = h.service.GetVendor(c.Request.Context(), p.ID)
	case middleware.RoleAdmin:
		data, err = h.service.GetAdmin(c.Request.Context(), p.ID)
	default:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Unknown role")
		return
	}
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Invalid email or password")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, response.CodeConflict, "Email already registered")
	case errors.Is(err, ErrVendorNotApproved):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Vendor account is not approved")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Account not found")
	case errors.Is(err, ErrInvalidCode):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid or expired verification code")
	case errors.Is(err, ErrCodeExpired):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Verification code expired")
	case errors.Is(err, ErrTooManyAttempts):
		response.Error(c, http.StatusTooManyRequests, response.CodeInvalidInput, "Too many verification attempts")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
