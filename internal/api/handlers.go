package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/sanitize"
	"sitegen_server/internal/store"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
	"sitegen_server/internal/webhook"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	pipeline      *pipeline.Pipeline
	stats         *pipeline.CountingRecorder
	store         store.Store
	sanitizeOpts  sanitize.Options
	sanitize      bool
	webhookSecret string
	replay        *webhook.ReplayGuard
	maxFeatures   int
}

// Deps are the collaborators an APIHandler needs. Store and Replay may be nil,
// which disables the endpoints that depend on them.
type Deps struct {
	Pipeline        *pipeline.Pipeline
	Stats           *pipeline.CountingRecorder
	Store           store.Store
	SanitizeOptions sanitize.Options
	SanitizeIngest  bool
	WebhookSecret   string
	Replay          *webhook.ReplayGuard
	MaxFeatures     int
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(d Deps) *APIHandler {
	if d.Stats == nil {
		d.Stats = &pipeline.CountingRecorder{}
	}
	return &APIHandler{
		pipeline:      d.Pipeline,
		stats:         d.Stats,
		store:         d.Store,
		sanitizeOpts:  d.SanitizeOptions,
		sanitize:      d.SanitizeIngest,
		webhookSecret: d.WebhookSecret,
		replay:        d.Replay,
		maxFeatures:   d.MaxFeatures,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	MaxFeatures  int    `json:"maxFeatures"`
	BusinessType string `json:"businessType"`
	Sanitize     bool   `json:"sanitize"`
}

type SanitizeRequest struct {
	Config             *types.SiteConfiguration `json:"config" binding:"required"`
	AllowExternalLinks *bool                    `json:"allowExternalLinks"`
	AllowedDomains     []string                 `json:"allowedDomains"`
	MaxURLLength       int                      `json:"maxUrlLength" binding:"omitempty,min=1"`
}

type IngestResponse struct {
	ID     string          `json:"id"`
	Report validate.Report `json:"report"`
}

// --- API Handlers ---

// POST /site/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	opts := pipeline.RunOptions{MaxFeatures: req.MaxFeatures, Sanitize: req.Sanitize}
	if opts.MaxFeatures == 0 {
		opts.MaxFeatures = h.maxFeatures
	}
	if req.BusinessType != "" {
		bt, err := extract.ResolveBusinessType(req.BusinessType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.BusinessType = bt
	}

	res, err := h.pipeline.Run(c.Request.Context(), req.Prompt, opts)
	var (
		inErr    *pipeline.InputError
		rejected *validate.RejectedError
	)
	switch {
	case errors.As(err, &inErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": inErr.Error()})
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, res)
	case err != nil:
		log.Printf("ERROR: generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed: " + err.Error()})
	default:
		c.JSON(http.StatusOK, res)
	}
}

// POST /site/validate
func (h *APIHandler) ValidateSite(c *gin.Context) {
	var cfg types.SiteConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, validate.Validate(&cfg))
}

// POST /site/sanitize
func (h *APIHandler) SanitizeSite(c *gin.Context) {
	var req SanitizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	opts := h.sanitizeOpts
	if req.AllowExternalLinks != nil {
		opts.AllowExternalLinks = *req.AllowExternalLinks
	}
	if len(req.AllowedDomains) > 0 {
		opts.AllowedDomains = req.AllowedDomains
	}
	if req.MaxURLLength > 0 {
		opts.MaxURLLength = req.MaxURLLength
	}
	c.JSON(http.StatusOK, sanitize.Sanitize(req.Config, opts))
}

// POST /webhooks/site accepts a signed configuration from another system.
func (h *APIHandler) IngestSite(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}
	if err := webhook.Verify(h.webhookSecret, body, c.GetHeader(webhook.SignatureHeader)); err != nil {
		if errors.Is(err, webhook.ErrMissingSecret) {
			log.Printf("ERROR: webhook delivery refused: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	deliveryID := c.GetHeader(webhook.DeliveryHeader)
	if h.replay != nil {
		if err := h.replay.Check(deliveryID); err != nil {
			status := http.StatusConflict
			if errors.Is(err, webhook.ErrMissingDeliveryID) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
	}

	cfg, err := decodeConfig(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid configuration: " + err.Error()})
		return
	}
	var warnings []string
	if h.sanitize {
		sr := sanitize.Sanitize(cfg, h.sanitizeOpts)
		cfg, warnings = sr.Sanitized, sr.Warnings
	}
	report := validate.Validate(cfg)
	report.AddWarnings(warnings...)
	if !report.Valid {
		log.Printf("WARN: webhook delivery %s rejected with %d errors", deliveryID, len(report.Errors))
		c.JSON(http.StatusUnprocessableEntity, IngestResponse{Report: report})
		return
	}

	id := uuid.NewString()
	if h.store != nil {
		if err := h.store.Save(c.Request.Context(), id, cfg); err != nil {
			if h.replay != nil {
				h.replay.Forget(deliveryID)
			}
			log.Printf("ERROR: failed to store webhook delivery %s: %v", deliveryID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store configuration"})
			return
		}
	}
	log.Printf("Info: accepted webhook delivery %s as %s", deliveryID, id)
	c.JSON(http.StatusCreated, IngestResponse{ID: id, Report: report})
}

func decodeConfig(body []byte) (*types.SiteConfiguration, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var cfg types.SiteConfiguration
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GET /site/:id
func (h *APIHandler) GetSite(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "storage is not configured"})
		return
	}
	cfg, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("ERROR: failed to load configuration %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GET /stats
func (h *APIHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"generator": h.pipeline.GeneratorName(),
		"events":    h.stats.Snapshot(),
	})
}
