package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/user"
	"lavka-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) register(c *gin.Context) {
	var params user.RegisterParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.Email == "" || len(params.Password) < 6 {
		respondError(c, http.StatusBadRequest, "email and a password of at least 6 characters are required")
		return
	}

	res, err := h.userSvc.Register(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "email is already registered")
			return
		}
		respondInternal(c, h.cfg, "failed to register", err)
		return
	}

	setAuthCookie(c, res.Token)
	respondOK(c, res)
}

func (h *Handler) login(c *gin.Context) {
	var params user.LoginParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.userSvc.Login(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondInternal(c, h.cfg, "failed to log in", err)
		return
	}

	setAuthCookie(c, res.Token)
	respondOK(c, res)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	respondOK(c, gin.H{"loggedOut": true})
}

func (h *Handler) me(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		respondInternal(c, h.cfg, "failed to load profile", err)
		return
	}
	respondOK(c, u)
}

func setAuthCookie(c *gin.Context, token string) {
	// 24h, matching the token lifetime.
	c.SetCookie("access_token", token, 24*60*60, "/", "", false, true)
}
