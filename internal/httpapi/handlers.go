package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"auracore/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// core.Runtime implements it.
type Service interface {
	Version() string
	Initialize() bool
	Shutdown()
	Ready() bool
	Status() types.StatusResponse
	ProcessRequest(text *string) types.RequestResult
	Generate(ctx context.Context, prompt *string) (types.GenerateResponse, error)
	OptimizeMemory() bool
	EnableNativeHooks()
	AnalyzeBootImage(data []byte) (types.BootAnalysis, error)
	MetricsSnapshot() types.SystemMetrics
}

type handlers struct {
	svc Service
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON enforces content type and body size. An empty body decodes to
// the zero value so {"request": null} and no body behave the same.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		// Oversized bodies land here too; 400 avoids leaking the limit.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body", "")
		return false
	}
	return true
}

// version godoc
// @Summary      Runtime version
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.VersionResponse
// @Router       /version [get]
func (h *handlers) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.VersionResponse{Version: h.svc.Version()})
}

// status godoc
// @Summary      Runtime and session status
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// initialize godoc
// @Summary      Initialize the AI core
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.BoolResponse
// @Failure      500  {object}  types.BoolResponse
// @Router       /v1/initialize [post]
func (h *handlers) initialize(w http.ResponseWriter, r *http.Request) {
	ok := h.svc.Initialize()
	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	reqEvent(r, LevelInfo).Bool("ok", ok).Msg("initialize")
	writeJSON(w, status, types.BoolResponse{OK: ok})
}

// shutdown godoc
// @Summary      Shut down the AI core
// @Description  Waits for in-flight generate calls, then frees the session and memory pool.
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.BoolResponse
// @Router       /v1/shutdown [post]
func (h *handlers) shutdown(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.svc.Shutdown()
	reqEvent(r, LevelInfo).Dur("dur", time.Since(start)).Msg("shutdown")
	writeJSON(w, http.StatusOK, types.BoolResponse{OK: true})
}

// processRequest godoc
// @Summary      Route a request
// @Description  Classifies free-form text; a null request yields a failed result with error null_request.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      types.ProcessRequestBody  true  "Request text"
// @Success      200   {object}  types.RequestResult
// @Failure      400   {object}  types.ErrorResponse
// @Router       /v1/request [post]
func (h *handlers) processRequest(w http.ResponseWriter, r *http.Request) {
	var body types.ProcessRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}
	res := h.svc.ProcessRequest(body.Request)
	reqEvent(r, LevelDebug).Str("type", res.Type).Str("status", res.Status).Msg("request processed")
	writeJSON(w, http.StatusOK, res)
}

// generate godoc
// @Summary      Generate a local response
// @Description  Runs the prompt through the local model, loading it on first use. An empty prompt returns empty text.
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        body  body      types.GenerateRequest  true  "Prompt"
// @Success      200   {object}  types.GenerateResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Failure      504   {object}  types.ErrorResponse
// @Router       /v1/generate [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var body types.GenerateRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	start := time.Now()
	reqEvent(r, LevelInfo).Msg("generate start")

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	res, err := h.svc.Generate(ctx, body.Prompt)
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status, reason := statusFor(err)
		recordGenerateFailure(reason)
		reqEvent(r, LevelError).Int("status", status).Str("reason", reason).Dur("dur", time.Since(start)).Err(err).Msg("generate end")
		writeJSONError(w, status, err.Error(), reason)
		return
	}
	reqEvent(r, LevelInfo).Int("status", http.StatusOK).Str("session_id", res.SessionID).Dur("dur", time.Since(start)).Msg("generate end")
	writeJSON(w, http.StatusOK, res)
}

// optimizeMemory godoc
// @Summary      Compact the memory pool
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.BoolResponse
// @Failure      409  {object}  types.BoolResponse
// @Router       /v1/memory/optimize [post]
func (h *handlers) optimizeMemory(w http.ResponseWriter, r *http.Request) {
	ok := h.svc.OptimizeMemory()
	status := http.StatusOK
	if !ok {
		status = http.StatusConflict
	}
	writeJSON(w, status, types.BoolResponse{OK: ok})
}

// enableHooks godoc
// @Summary      Enable native hooks
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.BoolResponse
// @Router       /v1/hooks [post]
func (h *handlers) enableHooks(w http.ResponseWriter, r *http.Request) {
	h.svc.EnableNativeHooks()
	writeJSON(w, http.StatusOK, types.BoolResponse{OK: true})
}

// analyzeBoot godoc
// @Summary      Analyze a boot image
// @Description  The raw request body is the image. Undersized images fail with invalid_size; the payload is returned with 200 either way.
// @Tags         security
// @Accept       application/octet-stream
// @Produce      json
// @Success      200  {object}  types.BootAnalysis
// @Failure      400  {object}  types.ErrorResponse
// @Router       /v1/boot/analyze [post]
func (h *handlers) analyzeBoot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unreadable body", "")
		return
	}
	if len(data) == 0 {
		// An empty body is treated as no image at all.
		data = nil
	}
	res, err := h.svc.AnalyzeBootImage(data)
	if err != nil {
		reqEvent(r, LevelDebug).Str("reason", res.Error).Int("bytes", len(data)).Msg("boot image rejected")
	}
	writeJSON(w, http.StatusOK, res)
}

// metrics godoc
// @Summary      Runtime metrics snapshot
// @Tags         runtime
// @Produce      json
// @Success      200  {object}  types.SystemMetrics
// @Router       /v1/metrics [get]
func (h *handlers) metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.MetricsSnapshot())
}
