package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
)

type addonService interface {
	ListAddons(ctx context.Context, categorySlug, partnerID string) ([]*entities.Addon, error)
}

type categoryFieldService interface {
	CreateField(ctx context.Context, input *entities.CreateCategoryFieldInput) (*entities.CategoryField, error)
	ListFields(ctx context.Context, categoryID string) ([]*entities.CategoryField, error)
	Reorder(ctx context.Context, input *entities.ReorderCategoryFieldsInput) error
}

// CatalogHandler serves addons and category fields
type CatalogHandler struct {
	addons addonService
	fields categoryFieldService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(addons addonService, fields categoryFieldService) *CatalogHandler {
	return &CatalogHandler{addons: addons, fields: fields}
}

// ListAddons lists active addons of a category
// GET /api/addons?categorySlug=&partnerId=
func (h *CatalogHandler) ListAddons(c *gin.Context) {
	partnerID := c.Query("partnerId")
	if partnerID == "" {
		if tenant, ok := middleware.GetTenant(c); ok {
			partnerID = tenant.ID.String()
		}
	}

	addons, err := h.addons.ListAddons(c.Request.Context(), c.Query("categorySlug"), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, addons)
}

// ListCategoryFields lists the fields of a category in display order
// GET /api/category-fields?service_category_id=
func (h *CatalogHandler) ListCategoryFields(c *gin.Context) {
	fields, err := h.fields.ListFields(c.Request.Context(), c.Query("service_category_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if fields == nil {
		fields = []*entities.CategoryField{}
	}

	response.Success(c, http.StatusOK, fields)
}

// CreateCategoryField creates a category field
// POST /api/category-fields
func (h *CatalogHandler) CreateCategoryField(c *gin.Context) {
	var input entities.CreateCategoryFieldInput
	if !bindJSON(c, &input) {
		return
	}

	field, err := h.fields.CreateField(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, field)
}

// ReorderCategoryFields applies a display order batch
// PATCH /api/category-fields/reorder
func (h *CatalogHandler) ReorderCategoryFields(c *gin.Context) {
	var input entities.ReorderCategoryFieldsInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.fields.Reorder(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
