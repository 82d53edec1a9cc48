package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/promo"

	"github.com/gin-gonic/gin"
)

func (h *Handler) validatePromo(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Code == "" {
		respondError(c, http.StatusBadRequest, "code is required")
		return
	}

	p, err := h.promoSvc.Validate(c.Request.Context(), body.Code)
	if err != nil {
		switch {
		case errors.Is(err, promo.ErrPromoNotFound):
			respondError(c, http.StatusNotFound, "Промокод не найден")
		case errors.Is(err, promo.ErrPromoInactive):
			respondError(c, http.StatusBadRequest, "Промокод неактивен")
		case errors.Is(err, promo.ErrPromoExpired):
			respondError(c, http.StatusBadRequest, "Срок действия промокода истёк")
		default:
			respondInternal(c, h.cfg, "failed to validate promo code", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"promoCode": gin.H{
			"id":       p.ID,
			"code":     p.Code,
			"discount": p.Discount,
			"isActive": p.IsActive,
		},
	})
}

func (h *Handler) activePromo(c *gin.Context) {
	p, err := h.promoSvc.ActivePromo(c.Request.Context())
	if err != nil {
		if errors.Is(err, promo.ErrNoActivePromo) {
			respondError(c, http.StatusNotFound, "no active promo code")
			return
		}
		respondInternal(c, h.cfg, "failed to load promo code", err)
		return
	}
	respondOK(c, p)
}

func (h *Handler) listPromos(c *gin.Context) {
	promos, err := h.promoSvc.List(c.Request.Context())
	if err != nil {
		respondInternal(c, h.cfg, "failed to load promo codes", err)
		return
	}
	if promos == nil {
		promos = []promo.PromoCode{}
	}
	respondOK(c, promos)
}

func (h *Handler) createPromo(c *gin.Context) {
	var params promo.CreatePromoParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.promoSvc.Create(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, promo.ErrEmptyCode), errors.Is(err, promo.ErrInvalidDiscount):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, promo.ErrCodeTaken):
			respondError(c, http.StatusConflict, "promo code already exists")
		default:
			respondInternal(c, h.cfg, "failed to create promo code", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

func (h *Handler) updatePromo(c *gin.Context) {
	var params promo.UpdatePromoParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.promoSvc.Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		switch {
		case errors.Is(err, promo.ErrPromoNotFound):
			respondError(c, http.StatusNotFound, "promo code not found")
		case errors.Is(err, promo.ErrEmptyCode), errors.Is(err, promo.ErrInvalidDiscount):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, h.cfg, "failed to update promo code", err)
		}
		return
	}
	respondOK(c, p)
}

func (h *Handler) deletePromo(c *gin.Context) {
	if err := h.promoSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, promo.ErrPromoNotFound) {
			respondError(c, http.StatusNotFound, "promo code not found")
			return
		}
		respondInternal(c, h.cfg, "failed to delete promo code", err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
