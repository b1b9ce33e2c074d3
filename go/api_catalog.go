package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/petcare-api/internal/domains/catalog/ports"
)

// CatalogAPI serves products and categories.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Post /api/products
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.ProductRequest
	if !bindJSON(c, &payload) {
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), principal(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProduct(product))
}

// Get /api/products/:productId
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Put /api/products/:productId
// Applies a partial update; omitted fields keep their values
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	var payload catalogmapper.ProductRequest
	if !bindJSON(c, &payload) {
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), principal(c), c.Param("productId"), payload.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Delete /api/products/:productId
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), principal(c), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Product deleted successfully"})
}

// Get /api/category
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategories(categories))
}

// Post /api/category
func (api *CatalogAPI) CreateCategory(c *gin.Context) {
	var payload catalogmapper.CategoryRequest
	if !bindJSON(c, &payload) {
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), principal(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainCategory(category))
}

// Get /api/category/:categoryId
func (api *CatalogAPI) GetCategory(c *gin.Context) {
	category, err := api.service.GetCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(category))
}

// Put /api/category/:categoryId
func (api *CatalogAPI) UpdateCategory(c *gin.Context) {
	var payload catalogmapper.CategoryRequest
	if !bindJSON(c, &payload) {
		return
	}
	category, err := api.service.UpdateCategory(c.Request.Context(), principal(c), c.Param("categoryId"), payload.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(category))
}

// Delete /api/category/:categoryId
// Fails with 409 while products still reference the category
func (api *CatalogAPI) DeleteCategory(c *gin.Context) {
	if err := api.service.DeleteCategory(c.Request.Context(), principal(c), c.Param("categoryId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Category deleted successfully"})
}
