package types

// Model is a model file discovered on disk.
type Model struct {
	// Stable identifier for the model (the file name).
	// example: bitnet-b1.58-2b-q2.gguf
	ID string `json:"id" example:"bitnet-b1.58-2b-q2.gguf"`
	// Absolute path to the model file on disk.
	// example: /data/models/bitnet-b1.58-2b-q2.gguf
	Path string `json:"path" example:"/data/models/bitnet-b1.58-2b-q2.gguf"`
	// File size in bytes.
	// example: 1187000000
	SizeBytes int64 `json:"size_bytes,omitempty" example:"1187000000"`
}
