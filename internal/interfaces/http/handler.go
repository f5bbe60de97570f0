package http

import (
	"net/http"

	"admisiones-bot/internal/config"
	"admisiones-bot/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	relay           *usecases.RelayService
	settings        config.Settings
	knowledgeLoaded bool
	logger          zerolog.Logger
}

func NewHandler(relay *usecases.RelayService, settings config.Settings, knowledgeLoaded bool, logger zerolog.Logger) *Handler {
	return &Handler{
		relay:           relay,
		settings:        settings,
		knowledgeLoaded: knowledgeLoaded,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.Use(SecurityHeaders())
	r.Use(RequestID())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size

	r.GET("/", h.Health)
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
	r.GET("/debug", h.Debug)
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Bot funcionando correctamente")
}

// Verify answers the platform's subscription handshake: echo the
// challenge when the supplied token matches the configured secret.
func (h *Handler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if token == h.settings.VerifyToken {
		h.logger.Info().Str("mode", mode).Msg("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}
	h.logger.Warn().Str("mode", mode).Msg("webhook verification rejected")
	c.String(http.StatusForbidden, "Error de verificación")
}

// Receive handles a webhook delivery. The body is decoded strictly into
// the envelope shape; qualifying events run through the relay pipeline
// in order, one at a time. The ack is "OK" regardless of downstream
// outcomes so the platform does not redeliver.
func (h *Handler) Receive(c *gin.Context) {
	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn().Err(err).Msg("undecodable webhook body")
		c.String(http.StatusBadRequest, "Cuerpo inválido")
		return
	}

	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			h.relay.HandleEvent(c.Request.Context(), event.Normalize())
		}
	}

	c.String(http.StatusOK, "OK")
}

// Debug exposes configuration presence flags, never the values.
func (h *Handler) Debug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"verify_token_set":      h.settings.VerifyToken != "",
		"page_access_token_set": h.settings.PageAccessToken != "",
		"openai_key_set":        h.settings.OpenAIKey != "",
		"model":                 h.settings.OpenAIModel,
		"knowledge_loaded":      h.knowledgeLoaded,
	})
}
