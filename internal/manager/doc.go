// Package manager owns the local inference session: lazy construction,
// CPU affinity, admission and shutdown. It is structured into small files
// by concern:
//
//   - manager.go: core Manager type, setters, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: session states and the Snapshot projection.
//   - errors.go: error taxonomy (ModelLoadError, ErrSessionNotReady, IsTooBusy, ...).
//   - helpers.go: model path resolution, engine start with panic recovery.
//   - ensure.go: GetOrCreate, the guarded one-time construction.
//   - session.go: Session type, reference counting and close.
//   - worker.go: the pinned inference worker that owns the engine.
//   - admission.go: bounded queueing in front of the worker.
//   - infer.go: Generate entry points.
//   - unload.go: Close and Reopen.
//   - status_report.go: Status reporting.
//   - sanity.go: dependency preflight.
//   - metrics.go: Prometheus collectors.
//
// Build tags and runtimes:
//
//   - In-process llama: go-llama.cpp adapter, enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     Without the tag adapter_llama_stub.go is compiled and every session
//     creation fails with a dependency-unavailable ModelLoadError.
//
// Only one session exists at a time. The model path passed to GetOrCreate is
// honored on the first successful call only; later calls with a different
// path return the existing session and log a warning instead of reloading.
package manager
