package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/sse"
)

const (
	EventConnected = "connected"
	EventNotice    = "notice"

	clientBuffer = 8
)

// NoticeBroadcaster forwards every notice to the open pages as a JSON
// encoded "notice" event.
func NoticeBroadcaster(clients *sse.SSEClients) editor.Notifier {
	return editor.NotifierFunc(func(n editor.Notice) {
		data, err := json.Marshal(n)
		if err != nil {
			webLogger.Error().Err(err).Msg("Failed to encode notice")
			return
		}
		clients.Broadcast(string(data))
	})
}

func (h *Handler) serveEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeSSE)
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	client := sse.NewClient(clientBuffer)
	h.clients.Add(client)

	webLogger.Debug().Stringer("client", client.ID).Msg("New SSE client connected")

	defer func() {
		h.clients.Delete(client)
		webLogger.Debug().Stringer("client", client.ID).Msg("SSE client disconnected")
	}()

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", EventConnected, client.ID)
	flusher.Flush()

	done := r.Context().Done()
	for {
		select {
		case msg, ok := <-client.Msg:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", EventNotice, msg)
			flusher.Flush()
		case <-done:
			return
		}
	}
}
