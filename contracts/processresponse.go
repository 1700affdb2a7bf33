package contracts

type Process struct {
	Success    bool   `json:"success"`
	OutputFile string `json:"output_file"`
	// Analysis is a *FileAnalysis or an *AnalysisError
	Analysis      interface{} `json:"analysis"`
	CommandOutput string      `json:"command_output"`
	ArchiveURL    string      `json:"archive_url,omitempty"`
}

type ProcessResponse struct {
	BaseResponse
	ResponseData SingleProcessResponse `json:"response"`
}

type SingleProcessResponse struct {
	SingleResponse
	ResourceData *Process `json:"data,omitempty"`
}
