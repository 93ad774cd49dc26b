package transport

import (
	"errors"
	"net/http"
	"strconv"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/middleware"
	"nova-commerce/internal/repository"
	"nova-commerce/internal/service"
	"nova-commerce/internal/upload"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxProductFormMemory bounds in-memory multipart parsing; larger file
// parts spill to temp files.
const maxProductFormMemory = 32 << 20

// imageFilesField and imageURLsField are the multipart field names the
// admin form submits product media under.
const (
	imageFilesField = "imageFiles"
	imageURLsField  = "imageUrls"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	catalogService service.CatalogService
	uploads        *upload.Store
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, uploads *upload.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		uploads:        uploads,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns products matching the query filters
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		CategorySlug: r.URL.Query().Get("categorySlug"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Search:       r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		filter.CategoryID = &id
	}

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns one product joined with its category
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create adds a new product from the multipart admin form
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), input)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update applies a partial update from the multipart admin form
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	input, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// parseProductForm reads the multipart form, saving uploaded image files
// and collecting the raw field values. It writes the error response
// itself and returns ok=false on failure.
func (h *ProductHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (service.ProductInput, bool) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form data")
		return service.ProductInput{}, false
	}

	input := service.ProductInput{
		Name:            formValue(r, "name"),
		Description:     formValue(r, "description"),
		Price:           formValue(r, "price"),
		DiscountPercent: formValue(r, "discountPercent"),
		CategoryID:      formValue(r, "categoryId"),
		Sizes:           formValue(r, "sizes"),
		Colors:          formValue(r, "colors"),
		Stock:           formValue(r, "stock"),
		Featured:        formValue(r, "featured"),
		ImageURLs:       formValue(r, imageURLsField),
	}

	files := r.MultipartForm.File[imageFilesField]
	uploaded, err := h.uploads.SaveAll(files, domain.MaxProductImages)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedType) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("Failed to store uploaded images", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store uploaded images")
		}
		return service.ProductInput{}, false
	}
	input.UploadedImages = uploaded

	return input, true
}

// formValue returns the first value of a multipart field, or nil when
// the field was not submitted at all.
func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
