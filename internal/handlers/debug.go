package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/telemetry"
)

// Reconcile handles POST /debug/reconcile/:username. It rebuilds both sides
// of the conversation from the message ledger.
func (h *ConversationHandler) Reconcile(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	report, err := h.svc.Reconcile(h.requestContext(c), requester, c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router gin.IRoutes, conversations *ConversationHandler, emitter *telemetry.Emitter, enabled bool) {
	if !enabled {
		return
	}

	router.POST("/debug/reconcile/:username", conversations.Reconcile)

	router.GET("/debug/telemetry-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "telemetry emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), "telemetry.test", requestIDFromContext(c), userIDFromContext(c), gin.H{"status": "ok"})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
