package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/adapters/catalog"
	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
	"github.com/satriahrh/speechsuite/internal/auth"
	"github.com/satriahrh/speechsuite/usecase"
)

const (
	serviceName         = "speechsuite"
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Options carries the dispatcher settings that come from configuration
type Options struct {
	DefaultRate   float64
	DefaultVolume float64
	StaticDir     string
	// Tokens enables bearer auth on the mutating routes when set
	Tokens *auth.TokenManager
}

// Handler serves the HTTP surface of the synthesis service
type Handler struct {
	speech  *usecase.SpeechService
	catalog repositories.VoiceCatalog
	store   repositories.ArtifactStore
	backend string
	opts    Options
	logger  *zap.Logger
}

// NewHandler creates the HTTP handler set
func NewHandler(
	speech *usecase.SpeechService,
	voices repositories.VoiceCatalog,
	store repositories.ArtifactStore,
	backend string,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		speech:  speech,
		catalog: voices,
		store:   store,
		backend: backend,
		opts:    opts,
		logger:  logger,
	}
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handler) {
	protected := requireClientToken(h.opts.Tokens, h.logger)

	// Health check
	e.GET("/health", h.health)

	e.GET("/voices", h.listVoices)
	e.POST("/synthesize", func(c echo.Context) error {
		return h.synthesize(c, false)
	}, protected)
	// Path and body shape used by the first web client
	e.POST("/tts", func(c echo.Context) error {
		return h.synthesize(c, true)
	}, protected)

	e.GET("/audio/:name", h.serveAudio)
	e.POST("/cleanup", h.cleanup, protected)
	e.GET("/history", h.history)

	if h.opts.StaticDir != "" {
		e.Static("/", h.opts.StaticDir)
	}
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Backend:   h.backend,
		Artifacts: len(h.store.List()),
	})
}

func (h *Handler) listVoices(c echo.Context) error {
	if lang := c.QueryParam("lang"); lang != "" {
		return c.JSON(http.StatusOK, h.catalog.ListByLanguage(lang))
	}
	return c.JSON(http.StatusOK, h.catalog.List())
}

func (h *Handler) synthesize(c echo.Context, legacy bool) error {
	var req SynthesizeRequest

	// Bind and validate request
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Failed to bind synthesize request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	synthesisReq := h.toSynthesisRequest(req, legacy)

	artifact, err := h.speech.Generate(c.Request().Context(), synthesisReq)
	if err != nil {
		return respondError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, SynthesizeResponse{
		ArtifactName:    artifact.Name,
		AudioURL:        "/audio/" + artifact.Name,
		ByteSize:        artifact.ByteSize,
		CreatedAt:       artifact.CreatedAt,
		VoiceIdentifier: synthesisReq.VoiceIdentifier,
	})
}

// toSynthesisRequest fills omitted rate and volume from configuration.
// Legacy callers also fall back to the default voice.
func (h *Handler) toSynthesisRequest(req SynthesizeRequest, legacy bool) entities.SynthesisRequest {
	voice := req.VoiceIdentifier
	if voice == "" {
		voice = req.Voice
	}
	if voice == "" && legacy {
		voice = catalog.DefaultVoice
	}

	rate := h.opts.DefaultRate
	if req.Rate != nil {
		rate = *req.Rate
	}

	volume := h.opts.DefaultVolume
	if req.Volume != nil {
		volume = *req.Volume
	}

	return entities.SynthesisRequest{
		Text:            req.Text,
		VoiceIdentifier: voice,
		Rate:            rate,
		Volume:          volume,
	}
}

func (h *Handler) serveAudio(c echo.Context) error {
	name := c.Param("name")

	file, artifact, err := h.store.Open(name)
	if err != nil {
		return respondError(c, err, h.logger)
	}
	defer file.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, artifact.ContentType)
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	http.ServeContent(res, c.Request(), artifact.Name, artifact.CreatedAt, file)
	return nil
}

func (h *Handler) cleanup(c echo.Context) error {
	removed, err := h.store.Purge()
	if err != nil {
		return respondError(c, err, h.logger)
	}

	h.logger.Info("Artifacts cleaned up", zap.Int("removed", removed))
	return c.JSON(http.StatusOK, CleanupResponse{CleanedFiles: removed})
}

func (h *Handler) history(c echo.Context) error {
	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return respondError(c, entities.NewValidationError("limit", "limit must be a positive integer"), h.logger)
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := h.speech.History(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, entries)
}
