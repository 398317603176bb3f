package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/ai"
	"github.com/promptlab/promptlab/internal/common"
)

type llmChatReq struct {
	Provider string       `json:"provider"`
	Model    string       `json:"model" binding:"required"`
	Messages []ai.Message `json:"messages" binding:"required"`
	Stream   bool         `json:"stream"`
}

// LLMChat proxies a chat request to a provider so browser clients never hold
// vendor API keys. Provider failures surface as human-readable strings with
// no retry.
func (h *Handler) LLMChat(c *gin.Context) {
	var req llmChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if req.Provider == "" {
		req.Provider = "openrouter"
	}

	provider, err := h.Registry.Get(c.Request.Context(), req.Provider, req.Model)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10007, err.Error())
		return
	}

	if req.Stream {
		h.streamChat(c, provider, req.Messages)
		return
	}

	reply, err := provider.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		common.Fail(c, http.StatusBadGateway, 50201, err.Error())
		return
	}
	common.OK(c, gin.H{"reply": reply})
}

func (h *Handler) streamChat(c *gin.Context, provider ai.Provider, messages []ai.Message) {
	sp, ok := provider.(ai.StreamProvider)
	if !ok {
		common.Fail(c, http.StatusBadRequest, 10008, "provider does not support streaming")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		fmt.Fprintf(c.Writer, "event: error\ndata: flusher not supported\n\n")
		return
	}

	writeEvent := func(event string, payload any) {
		b, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"message\":\"json marshal failed\"}\n\n")
			flusher.Flush()
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, b)
		flusher.Flush()
	}

	ctx := c.Request.Context()
	chunks, errs := sp.StreamChat(ctx, messages)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				writeEvent("done", gin.H{"type": "done"})
				return
			}
			writeEvent("chunk", gin.H{"type": "chunk", "delta": chunk})

		case err, ok := <-errs:
			if !ok || err == nil {
				errs = nil // closed; wait for chunks to drain
				continue
			}
			writeEvent("error", gin.H{"type": "error", "message": err.Error()})
			return

		case <-ticker.C:
			writeEvent("ping", gin.H{"type": "ping", "ts": time.Now().Unix()})

		case <-ctx.Done():
			return
		}
	}
}
