package clientcli

// PutOptions configures a write. Text takes precedence over B64 on the
// server, so set only one of them.
type PutOptions struct {
	Name string
	Text string
	B64  string
}

// GetResult is the value read from the server.
type GetResult struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Size  int    `json:"size_bytes"`
	ETag  string `json:"etag,omitempty"`
}

// PutResult is the verified value echoed back by the server.
type PutResult struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Size  int    `json:"size_bytes"`
}

// ScriptResult is a downloaded updater script.
type ScriptResult struct {
	FileName  string `json:"file_name"`
	LocalPath string `json:"local_path,omitempty"` // set once saved
	Content   string `json:"-"`
	Size      int    `json:"size_bytes"`
}
