package upload

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/utils/helper"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/google/uuid"
)

// FallbackFilename is used when nothing of the client name survives sanitizing
const FallbackFilename = "upload.wav"

var (
	ErrNoFile         = errors.New("No file uploaded")
	ErrNoFileSelected = errors.New("No file selected")
	ErrNotWAV         = errors.New("Only WAV files are allowed")
)

// Create stores the uploaded file as <uploads>/<uuid>_<name> and analyzes it.
// An analysis failure is reported inside the response, not as an error.
func Create(
	ctx context.Context,
	requestID string,
	fh *multipart.FileHeader,
) (
	*contracts.UploadResponse,
	error,
) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if len(fh.Filename) == 0 {
		return nil, ErrNoFileSelected
	}
	if !helper.AllowedFile(fh.Filename) {
		return nil, ErrNotWAV
	}

	filename := helper.SecureFilename(fh.Filename)
	if len(filename) == 0 || !helper.AllowedFile(filename) {
		filename = FallbackFilename
	}
	fileID := uuid.New().String()
	uploadDir := configmanager.ConfStore.Upload.Dir
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		ymlogger.LogErrorf(requestID, "Failed to create the upload folder [%s]. Error: [%#v]", uploadDir, err)
		return nil, err
	}
	inputPath := filepath.Join(uploadDir, helper.UploadName(fileID, filename))
	if err := save(fh, inputPath); err != nil {
		ymlogger.LogErrorf(requestID, "Failed to save the upload [%s]. Error: [%#v]", inputPath, err)
		return nil, err
	}
	ymlogger.LogInfof(requestID, "Saved upload [%s] as [%s]", fh.Filename, inputPath)

	response := new(contracts.UploadResponse)
	responseData := new(contracts.SingleUploadResponse)
	responseData.ResourceData = &contracts.Upload{
		Success:  true,
		FileID:   fileID,
		Filename: filename,
		Analysis: contracts.AnalyzeForResponse(inputPath, configmanager.ConfStore.Upload.AnalysisMaxFrames),
	}
	responseData.SetSuccess("File uploaded")
	response.ResponseData = *responseData
	return response, nil
}

func save(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
