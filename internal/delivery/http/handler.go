package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/labelwise/backend/internal/domain"
	"github.com/labelwise/backend/internal/usecase"
)

// maxImageBytes caps uploaded label images at 10 MB
const maxImageBytes = 10 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ocr        domain.TextReader
	extractor  *usecase.LabelExtractor
	analyzer   *usecase.LabelAnalyzer
	translator *usecase.TranslationService
	auth       *usecase.AuthService
	products   domain.ProductRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	ocr domain.TextReader,
	extractor *usecase.LabelExtractor,
	analyzer *usecase.LabelAnalyzer,
	translator *usecase.TranslationService,
	auth *usecase.AuthService,
	products domain.ProductRepository,
) *Handler {
	return &Handler{
		ocr:        ocr,
		extractor:  extractor,
		analyzer:   analyzer,
		translator: translator,
		auth:       auth,
		products:   products,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "labelwise-backend",
		"version": "1.0.0",
	})
}

// Register handles account creation
func (h *Handler) Register(c *gin.Context) {
	var req usecase.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Password must be at least 8 characters with an uppercase letter, a digit and a special character",
			})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"email": user.Email,
		"name":  user.Name,
		"bmi":   user.BMI,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles credential verification and token issuance
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"email": user.Email,
		"name":  user.Name,
	})
}

// GetProfile returns the authenticated user's account
func (h *Handler) GetProfile(c *gin.Context) {
	email := c.GetString(contextKeyEmail)

	user, err := h.auth.GetProfile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile overwrites the authenticated user's profile fields
func (h *Handler) UpdateProfile(c *gin.Context) {
	email := c.GetString(contextKeyEmail)

	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bmi, err := h.auth.UpdateProfile(c.Request.Context(), email, update)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bmi": bmi})
}

// AnalyzeLabel OCRs an uploaded label image, rates it against the user's
// profile and returns the extracted product details alongside the rating.
func (h *Handler) AnalyzeLabel(c *gin.Context) {
	email := c.GetString(contextKeyEmail)

	image, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fragments, err := h.ocr.ReadText(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Text detection temporarily unavailable"})
		return
	}

	ocrText := domain.JoinFragments(fragments)
	if ocrText == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No text detected in image"})
		return
	}

	user, err := h.auth.GetProfile(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), ocrText, domain.ProfileOf(user))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis temporarily unavailable"})
		return
	}

	record, err := h.extractor.Extract(c.Request.Context(), ocrText)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoStructure), errors.Is(err, domain.ErrMalformedResponse):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not extract product details from label"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction temporarily unavailable"})
		}
		return
	}

	duplicate, err := h.extractor.IsDuplicate(c.Request.Context(), record.ProductName, record.BrandName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product store temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":  analysis,
		"product":   record,
		"duplicate": duplicate,
		"ocr_text":  ocrText,
	})
}

type submitProductRequest struct {
	ProductType          string `form:"product_type" binding:"required"`
	ConsumptionFrequency string `form:"consumption_frequency" binding:"required"`
}

// SubmitProduct extracts a product record from an uploaded label image,
// attaches the caller's classification and persists it unless a record with
// the same name and brand already exists.
func (h *Handler) SubmitProduct(c *gin.Context) {
	var req submitProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productType := domain.ProductType(req.ProductType)
	frequency := domain.ConsumptionFrequency(req.ConsumptionFrequency)
	if !productType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_type must be Nutritional, Regular or Recreational"})
		return
	}
	if !frequency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consumption_frequency must be Daily, Weekly or Monthly"})
		return
	}

	image, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fragments, err := h.ocr.ReadText(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Text detection temporarily unavailable"})
		return
	}

	ocrText := domain.JoinFragments(fragments)
	record, err := h.extractor.Extract(c.Request.Context(), ocrText)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No text detected in image"})
		case errors.Is(err, domain.ErrNoStructure), errors.Is(err, domain.ErrMalformedResponse):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not extract product details from label"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction temporarily unavailable"})
		}
		return
	}

	// Product names are stored lowercase; the store lookup itself stays
	// byte-exact.
	record.ProductName = strings.ToLower(record.ProductName)

	duplicate, err := h.extractor.IsDuplicate(c.Request.Context(), record.ProductName, record.BrandName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product store temporarily unavailable"})
		return
	}
	if duplicate {
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrDuplicateProduct.Error(), "product": record})
		return
	}

	h.extractor.AttachMetadata(record, productType, frequency)

	if err := h.products.Insert(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product store temporarily unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": record})
}

// GetProduct looks up a stored record by its exact product and brand name
// pair.
func (h *Handler) GetProduct(c *gin.Context) {
	productName := c.Query("product_name")
	brandName := c.Query("brand_name")
	if productName == "" || brandName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name and brand_name are required"})
		return
	}

	record, err := h.products.FindByKey(c.Request.Context(), productName, brandName)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product store temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": record})
}

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"target_lang" binding:"required"`
}

// Translate translates analysis text into the requested language
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	translated, err := h.translator.Translate(c.Request.Context(), req.Text, req.TargetLang)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_lang is required"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Translation temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translated": translated})
}

// readImageFile pulls the "image" part out of a multipart upload
func readImageFile(c *gin.Context) ([]byte, error) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		return nil, errors.New("image file is required")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, errors.New("failed to read image")
	}
	if len(image) == 0 {
		return nil, errors.New("image file is empty")
	}
	if len(image) > maxImageBytes {
		return nil, errors.New("image exceeds the 10MB limit")
	}
	return image, nil
}
