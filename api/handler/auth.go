package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/piar/gateway/api/transport"
	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/pkg/httpcontext"
	authUC "github.com/piar/gateway/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} transport.LoginResponse
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidLogin)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Credential())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.log(stdCtx).Info("session issued", zap.Int64("usuario_id", session.User.ID))
	h.respondJSON(ctx, http.StatusOK, transport.NewLoginResponse(session))
}
