package contracts

import "bitbucket.org/yellowmessenger/audiolab/utils/analysis"

// FileAnalysis is the analysis block of the upload and process responses
type FileAnalysis struct {
	Duration          float64 `json:"duration"`
	SampleRate        int     `json:"sample_rate"`
	Channels          int     `json:"channels"`
	MaxAmplitude      int     `json:"max_amplitude"`
	RMS               float64 `json:"rms"`
	DominantFrequency float64 `json:"dominant_freq"`
	FileSize          int64   `json:"file_size"`
}

// AnalysisError replaces FileAnalysis when the file could not be analyzed
type AnalysisError struct {
	Error string `json:"error"`
}

// NewFileAnalysis rounds duration and RMS to 2 places
func NewFileAnalysis(s *analysis.Stats) *FileAnalysis {
	return &FileAnalysis{
		Duration:          analysis.Round(s.Duration, 2),
		SampleRate:        s.SampleRate,
		Channels:          s.Channels,
		MaxAmplitude:      s.MaxAmplitude,
		RMS:               analysis.Round(s.RMS, 2),
		DominantFrequency: analysis.Round(s.DominantFrequency, 1),
		FileSize:          s.FileSize,
	}
}

// AnalyzeForResponse returns a FileAnalysis, or an AnalysisError when path can't be analyzed
func AnalyzeForResponse(path string, maxFrames int) interface{} {
	stats, _, err := analysis.AnalyzeFile(path, analysis.Options{MaxFrames: maxFrames})
	if err != nil {
		return &AnalysisError{Error: err.Error()}
	}
	return NewFileAnalysis(stats)
}
