package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/auth"
	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/httpapi/middleware"
)

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	token, expiresAt, err := h.Auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadPassword) {
			common.Fail(c, http.StatusUnauthorized, 40101, "invalid password")
			return
		}
		h.Log.Error("login failed", "err", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	common.OK(c, gin.H{
		"success":   true,
		"expiresAt": expiresAt,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.Auth.Logout(c.Request.Context(), token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	common.OK(c, gin.H{"success": true})
}

func (h *Handler) AuthStatus(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	authenticated := h.Auth.Validate(c.Request.Context(), token) == nil
	common.OK(c, gin.H{"authenticated": authenticated})
}
