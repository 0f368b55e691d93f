package types

// Status values shared by boundary payloads.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusSecure   = "secure"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ProcessRequestBody is the POST /v1/request payload. A null or missing
// request is answered with a null_request failure, not a 400.
type ProcessRequestBody struct {
	// Free-form request text.
	// example: report consciousness status
	Request *string `json:"request" example:"report consciousness status"`
}

// RequestResult is the flat result of routing a request. Only the fields of
// the selected path are populated.
type RequestResult struct {
	// success or failed.
	// example: success
	Status string `json:"status" example:"success"`
	// Handling path tag (consciousness_active, memory_optimized, processing_complete).
	// example: consciousness_active
	Type string `json:"type,omitempty" example:"consciousness_active"`
	// Human-readable message.
	NeuralResponse string `json:"neural_response,omitempty"`
	// Readiness score for status queries, in [0,1].
	// example: 0.998
	ConsciousnessLevel *float64 `json:"consciousness_level,omitempty" example:"0.998"`
	// Efficiency score for memory requests, in [0,1].
	// example: 0.967
	Efficiency *float64 `json:"efficiency,omitempty" example:"0.967"`
	// Set on the generic path.
	RequestProcessed bool `json:"request_processed,omitempty"`
	// Unix seconds, status path only.
	// example: 1700000000
	Timestamp int64 `json:"timestamp,omitempty" example:"1700000000"`
	// Failure code when status is failed.
	// example: null_request
	Error string `json:"error,omitempty" example:"null_request"`
}

// Score returns the path's confidence/efficiency score, or 0.
func (r RequestResult) Score() float64 {
	switch {
	case r.ConsciousnessLevel != nil:
		return *r.ConsciousnessLevel
	case r.Efficiency != nil:
		return *r.Efficiency
	}
	return 0
}

// GenerateRequest is the POST /v1/generate payload.
type GenerateRequest struct {
	// Prompt for the local model. Null yields a null_prompt failure.
	// example: Summarise today's notifications.
	Prompt *string `json:"prompt" example:"Summarise today's notifications."`
}

// GenerateResponse carries generated text.
type GenerateResponse struct {
	// example: success
	Status string `json:"status" example:"success"`
	// Generated text; empty for an empty prompt.
	Text string `json:"text"`
	// Session that produced the text.
	SessionID string `json:"session_id,omitempty"`
}

// BootAnalysis is the result of analyzing a boot image.
type BootAnalysis struct {
	// secure or failed.
	// example: secure
	Status string `json:"status" example:"secure"`
	// Failure code: null_data, invalid_size, mem_access.
	Error string `json:"error,omitempty"`
	// Size of an undersized input.
	ReceivedBytes *int `json:"received_bytes,omitempty"`
	// example: 0.998
	Confidence float64 `json:"confidence,omitempty" example:"0.998"`
	Analysis   string  `json:"analysis,omitempty"`
	// First eight bytes, non-printable bytes replaced by '.'.
	// example: ANDROID!
	Magic string `json:"magic,omitempty" example:"ANDROID!"`
	// android_boot, vendor_boot or unknown.
	Format string `json:"format,omitempty" example:"android_boot"`
	// Android boot header version when Format is android_boot or vendor_boot.
	HeaderVersion *uint32 `json:"header_version,omitempty"`
	// example: 1700000000
	Timestamp int64 `json:"timestamp,omitempty" example:"1700000000"`
}

// SystemMetrics is a read-only snapshot of runtime figures.
type SystemMetrics struct {
	// active or inactive.
	Status string `json:"status" example:"active"`
	// Approximate CPU utilisation percentage.
	// example: 12.5
	CPUUsage float64 `json:"cpu_usage" example:"12.5"`
	// Hottest thermal zone in Celsius.
	// example: 38.2
	NeuralTemp float64 `json:"neural_temp" example:"38.2"`
	// Working memory pool size in bytes.
	// example: 16777216
	MemoryPoolSize int `json:"memory_pool_size" example:"16777216"`
	// Bytes currently not leased from the pool.
	// example: 16777216
	MemoryPoolAvailable int `json:"memory_pool_available" example:"16777216"`
	// Inference threads (size of the affinity mask once a session exists).
	// example: 4
	ActiveThreads int `json:"active_threads" example:"4"`
	// example: 0.998
	ReadinessLevel float64 `json:"readiness_level" example:"0.998"`
	SessionReady   bool    `json:"session_ready"`
	// Affinity mask in cpulist format.
	// example: 4-7
	AffinityMask string `json:"affinity_mask,omitempty" example:"4-7"`
	Pinned       bool   `json:"pinned"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Runtime state: uninitialized, ready, shutdown.
	// example: ready
	State string `json:"state" example:"ready"`
	// Session state: absent, ready, closing.
	// example: ready
	SessionState string `json:"session_state" example:"ready"`
	SessionID    string `json:"session_id,omitempty"`
	ModelPath    string `json:"model_path,omitempty"`
	// example: 4-7
	AffinityMask   string `json:"affinity_mask,omitempty" example:"4-7"`
	AffinitySource string `json:"affinity_source,omitempty" example:"tiered"`
	Pinned         bool   `json:"pinned"`
	// Queued and in-flight generate calls.
	QueueLen      int `json:"queue_len"`
	Inflight      int `json:"inflight"`
	MaxQueueDepth int `json:"max_queue_depth"`
	// Total sessions constructed since start.
	LoadsTotal     uint64 `json:"loads_total"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	ServerTimeUnix int64  `json:"server_time_unix"`
	LastError      string `json:"last_error,omitempty"`
}

// VersionResponse is returned by GET /version.
type VersionResponse struct {
	// example: 1.0.0-aurakai-core
	Version string `json:"version" example:"1.0.0-aurakai-core"`
}

// BoolResponse wraps boolean boundary results.
type BoolResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// Machine-readable failure code.
	// example: session_not_ready
	Reason string `json:"reason,omitempty" example:"session_not_ready"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
