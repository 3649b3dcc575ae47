package chat

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/safarly/backend/pkg/utils"
)

// handleEvents streams session events over Server-Sent Events for clients
// that cannot hold a websocket. The stream starts with a snapshot frame so a
// reconnecting widget can rebuild its transcript.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	snap, err := h.manager.Snapshot(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	events, cancel, err := h.manager.Subscribe(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "snapshot", snap)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[sse] closing event stream for session=%s", sessionID)
			return
		case ev, open := <-events:
			if !open {
				// Session torn down.
				utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": sessionID})
				return
			}
			utils.SendSSEChunk(w, flusher, ev)
		}
	}
}
