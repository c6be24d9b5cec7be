package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jiorblanc/estoque"
	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

// DocumentStore is what the document endpoints need from persistence:
// the commit write path plus the catalog and mapping snapshots.
type DocumentStore interface {
	estoque.MovementStore
	CatalogVariants(ctx context.Context) ([]estoque.CatalogVariant, error)
	MappingEntries(ctx context.Context) ([]estoque.MappingEntry, error)
}

// DocumentController handles sales-report upload, preview and commit.
type DocumentController struct {
	store  DocumentStore
	parser *estoque.Parser
	log    *logrus.Logger
}

// NewDocumentController creates a new DocumentController.
func NewDocumentController(store DocumentStore, parser *estoque.Parser, log *logrus.Logger) *DocumentController {
	return &DocumentController{
		store:  store,
		parser: parser,
		log:    log,
	}
}

// ParseResponse is the preview returned for an uploaded report. Nothing
// is written; the client re-submits the (possibly corrected) rows to the
// commit endpoint.
type ParseResponse struct {
	RunId      string             `json:"run_id"`
	TotalFound int                `json:"total_found"`
	Simulation estoque.Simulation `json:"simulation"`

	// Set when the document produced no facts; not an error
	Message string `json:"message,omitempty"`
}

// ParseDocument extracts sale facts from an uploaded PDF and returns the
// simulated stock impact.
// POST /api/documents/parse
func (dc *DocumentController) ParseDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer file.Close()

	facts, err := dc.parser.Parse(file)
	if err != nil {
		config.LogError(dc.log, "handlers", "ParseDocument", "parse pdf", fileHeader.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to read PDF", "details": err.Error()})
		return
	}

	resp, err := dc.simulate(c.Request.Context(), facts)
	if err != nil {
		config.LogError(dc.log, "handlers", "ParseDocument", "simulate", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate movements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ParseLinesRequest carries pre-extracted report text, for clients that
// run their own text extraction.
type ParseLinesRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// ParseDocumentLines previews already-extracted report lines.
// POST /api/documents/parse-lines
func (dc *DocumentController) ParseDocumentLines(c *gin.Context) {
	var req ParseLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, err := dc.simulate(c.Request.Context(), dc.parser.ParseLines(req.Lines))
	if err != nil {
		config.LogError(dc.log, "handlers", "ParseDocumentLines", "simulate", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate movements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (dc *DocumentController) simulate(ctx context.Context, facts []estoque.ExtractionFact) (*ParseResponse, error) {
	variants, err := dc.store.CatalogVariants(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := dc.store.MappingEntries(ctx)
	if err != nil {
		return nil, err
	}

	catalog := estoque.NewCatalogSnapshot(variants)
	resolver := estoque.NewResolver(catalog, estoque.NewMappingTable(entries))
	sim := estoque.Simulate(resolver.ResolveAll(facts), catalog)

	resp := &ParseResponse{
		RunId:      uuid.NewString(),
		TotalFound: len(facts),
		Simulation: sim,
	}
	if len(facts) == 0 {
		resp.Message = estoque.ErrNoItemsFound.Error()
	}
	return resp, nil
}

// CommitRequest is the confirmed preview the operator submits.
type CommitRequest struct {
	Rows         []estoque.CommitRow `json:"rows" binding:"required"`
	ConfirmHigh  bool                `json:"confirm_high"`
	SaveMappings bool                `json:"save_mappings"`
}

// CommitDocument applies confirmed preview rows as venda_pdf stock
// decrements.
// POST /api/documents/commit
func (dc *DocumentController) CommitDocument(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	variants, err := dc.store.CatalogVariants(c.Request.Context())
	if err != nil {
		config.LogError(dc.log, "handlers", "CommitDocument", "load catalog", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	catalog := estoque.NewCatalogSnapshot(variants)

	summary, err := estoque.CommitBatch(c.Request.Context(), req.Rows, catalog, dc.store, estoque.CommitOptions{
		Reason:       models.ReasonVendaPdf,
		ConfirmHigh:  req.ConfirmHigh,
		SaveMappings: req.SaveMappings,
	})
	if err != nil {
		switch {
		case errors.Is(err, estoque.ErrNoItemsFound), errors.Is(err, estoque.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, estoque.ErrUnconfirmedHighQuantity):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			config.LogError(dc.log, "handlers", "CommitDocument", "commit batch", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit movements"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}
