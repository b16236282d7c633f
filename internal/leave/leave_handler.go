package leave

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/apperror"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxDocumentSize caps supporting document uploads at 5 MiB.
const maxDocumentSize = 5 << 20

// idempotencyCacheTTL is how long a completed response is replayable under
// the same Idempotency-Key.
const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

// releaseIdempotencyLock drops the in-flight lock the idempotency middleware
// took, whether the request succeeded or failed.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey, ok := c.Get("idempotency_lock_key"); ok {
		if lk, ok := lockKey.(string); ok && lk != "" {
			h.rdb.Del(c.Request.Context(), lk)
		}
	}
}

// cacheIdempotentResponse stores a successful response under the middleware's
// cache key so a retried Idempotency-Key replays instead of re-executing.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	cacheKey, ok := c.Get("idempotency_cache_key")
	if !ok {
		return
	}
	ck, ok := cacheKey.(string)
	if !ok || ck == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err(); err != nil {
		h.logger.Warn("idempotency cache write failed", zap.String("key", ck), zap.Error(err))
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create accepts either a JSON body or a multipart form. Multipart is used
// when a supporting document accompanies the application.
func (h *Handler) Create(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req CreateLeaveRequest
	var doc *DocumentUpload

	if c.ContentType() == "multipart/form-data" {
		if err := c.ShouldBind(&req); err != nil {
			h.logger.Warn("http create leave validation failed", zap.Error(err))
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}

		fileHeader, err := c.FormFile("supporting_document")
		if err == nil && fileHeader != nil {
			if fileHeader.Size > maxDocumentSize {
				response.Error(c, http.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE", "Supporting document exceeds the size limit", nil)
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				h.logger.Error("http create leave document open failed", zap.Error(err))
				response.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT", "Could not read the supporting document", nil)
				return
			}
			defer file.Close()
			doc = &DocumentUpload{File: file, Filename: fileHeader.Filename}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http create leave validation failed", zap.Error(err))
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("staff_id"), req, doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "25"))

	filter := ListFilter{
		Status:      c.Query("status"),
		LeaveType:   c.Query("leave_type"),
		ApplicantID: c.Query("applicant_id"),
		Page:        page,
		PageSize:    pageSize,
	}

	resp, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 25
	}
	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	resp, err := h.service.GetByApplicant(c.Request.Context(), c.GetString("staff_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DecideHOD(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http hod decision validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.DecideHOD(c.Request.Context(), c.GetString("staff_id"), c.GetString("role"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DecidePrincipal(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http principal decision validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.DecidePrincipal(c.Request.Context(), c.GetString("staff_id"), c.GetString("role"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.GetString("staff_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
