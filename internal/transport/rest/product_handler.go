package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/product"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.productSvc.List(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		respondInternal(c, h.cfg, "failed to load products", err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	respondOK(c, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.productSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(c, h.cfg, "failed to load product", err)
		return
	}
	respondOK(c, p)
}

func (h *Handler) createProduct(c *gin.Context) {
	var params product.CreateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.productSvc.Create(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, product.ErrInvalidPrice) || errors.Is(err, product.ErrInvalidStock) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(c, h.cfg, "failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

func (h *Handler) updateProduct(c *gin.Context) {
	var params product.UpdateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.productSvc.Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "product not found")
		case errors.Is(err, product.ErrInvalidPrice), errors.Is(err, product.ErrInvalidStock):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, h.cfg, "failed to update product", err)
		}
		return
	}
	respondOK(c, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(c, h.cfg, "failed to delete product", err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
