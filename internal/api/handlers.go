package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_ai_server/internal/ai"
	"storefront_ai_server/internal/ai/prompts"
	"storefront_ai_server/internal/catalog"
	"storefront_ai_server/internal/deploy"
	"storefront_ai_server/internal/export"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/render"
	"storefront_ai_server/internal/share"
	"storefront_ai_server/internal/store"
	"storefront_ai_server/internal/types"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator    *ai.Generator
	pages        *store.Store
	deployer     *deploy.Deployer
	shareBaseURL string
	log          *slog.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
// deployer may be nil, in which case deploy requests are refused.
func NewAPIHandler(
	gen *ai.Generator,
	pages *store.Store,
	deployer *deploy.Deployer,
	shareBaseURL string, // Public origin used to build share links
	log *slog.Logger,
) *APIHandler {
	if log == nil {
		log = slog.Default()
	}
	return &APIHandler{
		generator:    gen,
		pages:        pages,
		deployer:     deployer,
		shareBaseURL: shareBaseURL,
		log:          log,
	}
}

// --- Structs for API Requests/Responses ---

type GeneratePageRequest struct {
	Messages     []types.Message `json:"messages" binding:"required,min=1,dive"`
	PageType     page.PageType   `json:"pageType" binding:"required,oneof=landing product"`
	Preset       page.Preset     `json:"preset"` // Unknown presets fall back to the default
	ReferenceURL string          `json:"referenceUrl" binding:"omitempty,url"`

	// Last known output, used to anchor refinements.
	StructuredPage *page.StructuredPage `json:"structuredPage"`
	GeneratedCode  *render.Artifact     `json:"generatedCode"`
}

type GenerateVariantsRequest struct {
	Prompt       string        `json:"prompt" binding:"required"`
	PageType     page.PageType `json:"pageType" binding:"required,oneof=landing product"`
	ReferenceURL string        `json:"referenceUrl" binding:"omitempty,url"`
}

type GenerateVariantsResponse struct {
	Variants []ai.Variant `json:"variants"`
}

type InsertSectionRequest struct {
	StructuredPage *page.StructuredPage `json:"structuredPage" binding:"required"`
	SectionID      string               `json:"sectionId"`
	Label          string               `json:"label"`
	Prompt         string               `json:"prompt"`
	PageType       page.PageType        `json:"pageType" binding:"omitempty,oneof=landing product"`
	Preset         page.Preset          `json:"preset"`
}

type ListSectionsResponse struct {
	Sections   []catalog.SectionTemplate `json:"sections"`
	Categories []string                  `json:"categories"`
}

type SavePageRequest struct {
	ID             string               `json:"id"`
	Title          string               `json:"title" binding:"required"`
	PageType       page.PageType        `json:"pageType" binding:"required,oneof=landing product"`
	Description    string               `json:"description"`
	HTML           string               `json:"html" binding:"required"`
	GeneratedCode  *render.Artifact     `json:"generatedCode"`
	StructuredPage *page.StructuredPage `json:"structuredPage"`
	Prompt         string               `json:"prompt"` // Recorded on the version when code is supplied
}

type AddVersionRequest struct {
	HTML           string               `json:"html" binding:"required"`
	GeneratedCode  *render.Artifact     `json:"generatedCode" binding:"required"`
	StructuredPage *page.StructuredPage `json:"structuredPage"`
	Prompt         string               `json:"prompt"`
}

type ListPagesResponse struct {
	Pages []store.Page `json:"pages"`
}

type ShareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type DeployResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the body of every failed generation call.
type ErrorResponse struct {
	ErrorKind ai.ErrorKind `json:"errorKind"`
	Error     string       `json:"error"`
}

// --- Generation Handlers ---

// POST /project/generate
func (h *APIHandler) GeneratePage(c *gin.Context) {
	var req GeneratePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	res, err := h.generator.GeneratePage(c.Request.Context(), ai.GenerateRequest{
		Turns:        req.Messages,
		PageType:     req.PageType,
		Preset:       req.Preset,
		ReferenceURL: req.ReferenceURL,
		Anchor:       prompts.Anchor{Page: req.StructuredPage, Code: req.GeneratedCode},
	})
	if err != nil {
		h.generationError(c, "generate page", err)
		return
	}
	h.log.Info("page generated", "pageType", req.PageType, "provider", res.Provider, "attempts", res.Attempts)
	c.JSON(http.StatusOK, res)
}

// POST /project/variants
func (h *APIHandler) GenerateVariants(c *gin.Context) {
	var req GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	variants, err := h.generator.GenerateVariants(c.Request.Context(), ai.VariantRequest{
		Prompt:       req.Prompt,
		PageType:     req.PageType,
		ReferenceURL: req.ReferenceURL,
	})
	if err != nil {
		h.generationError(c, "generate variants", err)
		return
	}
	h.log.Info("variants generated", "pageType", req.PageType, "count", len(variants))
	c.JSON(http.StatusOK, GenerateVariantsResponse{Variants: variants})
}

// POST /project/sections/insert
func (h *APIHandler) InsertSection(c *gin.Context) {
	var req InsertSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	res, err := h.generator.InsertSection(c.Request.Context(), ai.InsertRequest{
		Page:      req.StructuredPage,
		SectionID: req.SectionID,
		Label:     req.Label,
		Prompt:    req.Prompt,
		PageType:  req.PageType,
		Preset:    req.Preset,
	})
	if err != nil {
		h.generationError(c, "insert section", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /sections?pageType=landing&category=Hero&q=price
func (h *APIHandler) ListSections(c *gin.Context) {
	cat := h.generator.Catalog()
	if cat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Section catalog is not loaded"})
		return
	}
	pageType := page.PageType(c.DefaultQuery("pageType", string(page.Landing)))
	if !pageType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown page type: " + string(pageType)})
		return
	}
	c.JSON(http.StatusOK, ListSectionsResponse{
		Sections:   cat.List(pageType, c.Query("category"), c.Query("q")),
		Categories: cat.Categories(pageType),
	})
}

// generationError maps a flow failure onto its status and stable message.
func (h *APIHandler) generationError(c *gin.Context, op string, err error) {
	kind := ai.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		h.log.Error(op+" failed", "errorKind", kind, "error", err)
	} else {
		h.log.Warn(op+" rejected", "errorKind", kind, "error", err)
	}
	c.JSON(status, ErrorResponse{ErrorKind: kind, Error: ai.UserMessage(err)})
}

// StatusFor returns the HTTP status reported for a failure kind.
func StatusFor(kind ai.ErrorKind) int {
	switch kind {
	case ai.KindInvalidInput:
		return http.StatusBadRequest
	case ai.KindAuth:
		return http.StatusUnauthorized
	case ai.KindBilling:
		return http.StatusPaymentRequired
	case ai.KindRateLimited:
		return http.StatusTooManyRequests
	case ai.KindMalformed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// --- Page Handlers ---

// POST /pages
func (h *APIHandler) SavePage(c *gin.Context) {
	var req SavePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	saved := h.pages.Save(store.Page{
		ID:          req.ID,
		Title:       req.Title,
		PageType:    req.PageType,
		Description: req.Description,
		HTML:        req.HTML,
		Code:        req.GeneratedCode,
		Structured:  req.StructuredPage,
	})
	if req.GeneratedCode != nil {
		if _, err := h.pages.AddVersion(saved.ID, req.HTML, *req.GeneratedCode, req.StructuredPage, req.Prompt); err != nil {
			h.pageError(c, saved.ID, err)
			return
		}
	}
	p, err := h.pages.Get(saved.ID)
	if err != nil {
		h.pageError(c, saved.ID, err)
		return
	}
	h.log.Info("page saved", "pageId", p.ID, "versions", len(p.Versions))
	c.JSON(http.StatusCreated, p)
}

// GET /pages
func (h *APIHandler) ListPages(c *gin.Context) {
	c.JSON(http.StatusOK, ListPagesResponse{Pages: h.pages.List()})
}

// GET /pages/:id
func (h *APIHandler) GetPage(c *gin.Context) {
	id := c.Param("id")
	p, err := h.pages.Get(id)
	if err != nil {
		h.pageError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /pages/:id
func (h *APIHandler) DeletePage(c *gin.Context) {
	id := c.Param("id")
	if !h.pages.Delete(id) {
		h.pageError(c, id, store.ErrPageNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /pages/:id/versions
func (h *APIHandler) AddVersion(c *gin.Context) {
	id := c.Param("id")
	var req AddVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	v, err := h.pages.AddVersion(id, req.HTML, *req.GeneratedCode, req.StructuredPage, req.Prompt)
	if err != nil {
		h.pageError(c, id, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// POST /pages/:id/share
func (h *APIHandler) SharePage(c *gin.Context) {
	id := c.Param("id")
	p, err := h.pages.Get(id)
	if err != nil {
		h.pageError(c, id, err)
		return
	}
	sp := share.FromPage(p)
	token, err := share.Encode(sp)
	if err != nil {
		h.log.Error("encode share token", "pageId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}
	c.JSON(http.StatusOK, ShareResponse{Token: token, URL: share.URL(h.shareBaseURL, token)})
}

const sharedPagePolicy = "sandbox allow-scripts"

// GET /share/:token
func (h *APIHandler) GetShared(c *gin.Context) {
	sp, err := share.Decode(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or corrupted share link"})
		return
	}
	doc, err := sp.Document()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or corrupted share link"})
		return
	}
	// Token content is untrusted; it runs in an opaque origin.
	c.Header("Content-Security-Policy", sharedPagePolicy)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GET /pages/:id/export
func (h *APIHandler) ExportPage(c *gin.Context) {
	id := c.Param("id")
	p, files, ok := h.projectFiles(c, id)
	if !ok {
		return
	}
	name := export.ProjectName(p.Title)
	var buf bytes.Buffer
	if err := export.Zip(&buf, name, files); err != nil {
		h.log.Error("export zip", "pageId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export page"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// POST /pages/:id/deploy
func (h *APIHandler) DeployPage(c *gin.Context) {
	id := c.Param("id")
	if !h.deployer.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": deploy.ErrNotConfigured.Error()})
		return
	}
	_, files, ok := h.projectFiles(c, id)
	if !ok {
		return
	}
	url, err := h.deployer.DeployFiles(c.Request.Context(), files)
	if err != nil {
		h.log.Error("deploy page", "pageId", id, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to deploy page"})
		return
	}
	h.log.Info("page deployed", "pageId", id, "url", url)
	c.JSON(http.StatusOK, DeployResponse{URL: url})
}

// projectFiles loads page id and builds its project files, writing the
// error response itself when that fails.
func (h *APIHandler) projectFiles(c *gin.Context, id string) (store.Page, []types.GeneratedFile, bool) {
	p, err := h.pages.Get(id)
	if err != nil {
		h.pageError(c, id, err)
		return store.Page{}, nil, false
	}
	if p.Code == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Page has no generated code to export"})
		return store.Page{}, nil, false
	}
	files, err := export.Files(*p.Code, p.Structured)
	if err != nil {
		h.log.Error("build project files", "pageId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build project files"})
		return store.Page{}, nil, false
	}
	return p, files, true
}

func (h *APIHandler) pageError(c *gin.Context, id string, err error) {
	if errors.Is(err, store.ErrPageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	h.log.Error("page store", "pageId", id, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access page"})
}
