package contracts

type Health struct {
	UploadDir    UploadDirHealth `json:"upload_dir"`
	Effects      map[string]bool `json:"effects"`
	RateFraction float64         `json:"rate_fraction"`
	Archive      string          `json:"archive,omitempty"`
	Events       bool            `json:"events"`
}

// UploadDirHealth contains the state of the upload folder
type UploadDirHealth struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
	Files    int    `json:"files"`
}

type HealthResponse struct {
	BaseResponse
	ResponseData SingleHealthResponse `json:"response"`
}

type SingleHealthResponse struct {
	SingleResponse
	ResourceData *Health `json:"data,omitempty"`
}
