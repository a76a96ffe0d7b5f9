package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/piar/gateway/api/transport"
	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/pkg/httpcontext"
	callUC "github.com/piar/gateway/usecase/call"
)

type ExecuteHandler struct {
	baseHandler
	uc *callUC.UseCase
}

func NewExecuteHandler(uc *callUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Run a stored procedure (sp_*) or set-returning function (fn_*, consultar_*)
// @Tags routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /execute-sp [post]
func (h *ExecuteHandler) Execute(ctx *fasthttp.RequestCtx) {
	var req transport.ExecuteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidCall)
		return
	}
	call, err := req.Call()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Execute(stdCtx, call)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeInternal) {
			h.log(stdCtx).Warn("routine call failed", zap.String("routine", call.Name), zap.Error(err))
		}
		h.respondError(ctx, err)
		return
	}

	if result.Kind == domain.CallProcedure {
		h.respondMessage(ctx, http.StatusOK, result.Message)
		return
	}
	h.respondJSON(ctx, http.StatusOK, result.Rows)
}
