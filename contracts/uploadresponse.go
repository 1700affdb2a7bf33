package contracts

type Upload struct {
	Success  bool   `json:"success"`
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	// Analysis is a *FileAnalysis or an *AnalysisError
	Analysis interface{} `json:"analysis"`
}

type UploadResponse struct {
	BaseResponse
	ResponseData SingleUploadResponse `json:"response"`
}

type SingleUploadResponse struct {
	SingleResponse
	ResourceData *Upload `json:"data,omitempty"`
}
