package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
	searchService  *services.SearchService
	productService *services.ProductService
}

func NewProductHandler(catalogService *services.CatalogService, searchService *services.SearchService, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		searchService:  searchService,
		productService: productService,
	}
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	filter, err := parseCatalogFilter(c)
	if err != nil {
		respondError(c, "Invalid filter parameters", err)
		return
	}

	page, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve products", err)
		return
	}
	utils.SendSuccess(c, "Products retrieved successfully", page)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	filter, err := parseCatalogFilter(c)
	if err != nil {
		respondError(c, "Invalid filter parameters", err)
		return
	}

	page, err := h.searchService.Search(c.Request.Context(), filter.Search, filter)
	if err != nil {
		respondError(c, "Failed to search products", err)
		return
	}
	utils.SendSuccess(c, "Products retrieved successfully", page)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID, callerFrom(c).UserID)
	if err != nil {
		respondError(c, "Failed to retrieve product", err)
		return
	}
	utils.SendSuccess(c, "Product retrieved successfully", product)
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	filter, err := parseCatalogFilter(c)
	if err != nil {
		respondError(c, "Invalid filter parameters", err)
		return
	}

	facets, err := h.catalogService.CategoryFacets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}
	utils.SendSuccess(c, "Categories retrieved successfully", facets)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid JSON data: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), callerFrom(c), &req)
	if err != nil {
		respondError(c, "Failed to create product", err)
		return
	}
	utils.SendCreated(c, "Product created successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid JSON data: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), callerFrom(c), productID, &req)
	if err != nil {
		respondError(c, "Failed to update product", err)
		return
	}
	utils.SendSuccess(c, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), callerFrom(c), productID); err != nil {
		respondError(c, "Failed to delete product", err)
		return
	}
	utils.SendSuccess(c, "Product deleted successfully", nil)
}

// UploadProductImage accepts a multipart "image" file and optional "is_primary".
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.SendValidationError(c, "Image file is required")
		return
	}

	isPrimary := false
	if raw := c.PostForm("is_primary"); raw != "" {
		if isPrimary, err = strconv.ParseBool(raw); err != nil {
			utils.SendValidationError(c, "Invalid is_primary format")
			return
		}
	}

	image, err := h.productService.AddImage(c.Request.Context(), callerFrom(c), productID, header, isPrimary)
	if err != nil {
		respondError(c, "Failed to upload image", err)
		return
	}
	utils.SendCreated(c, "Image uploaded successfully", image)
}

// ImportProducts accepts a multipart "file" CSV of products for the calling seller.
func (h *ProductHandler) ImportProducts(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "CSV file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.SendValidationError(c, "Failed to open CSV file")
		return
	}
	defer file.Close()

	report, err := h.productService.ImportCSV(c.Request.Context(), callerFrom(c), file)
	if err != nil {
		respondError(c, "Failed to import products", err)
		return
	}
	utils.SendSuccess(c, "CSV processed", report)
}
