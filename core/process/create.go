package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/newrelic"
	"bitbucket.org/yellowmessenger/audiolab/queuemanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/archive"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
	"bitbucket.org/yellowmessenger/audiolab/utils/helper"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

var (
	ErrFileNotFound  = errors.New("File not found")
	ErrInvalidEffect = errors.New("Invalid effect type")
)

var (
	runner    *effects.Runner
	uploader  archive.Uploader
	publisher *queuemanager.Publisher
)

// Init sets the runner and the optional archive and event sinks
func Init(r *effects.Runner, u archive.Uploader, p *queuemanager.Publisher) {
	runner, uploader, publisher = r, u, p
}

// Runner returns the runner set by Init
func Runner() *effects.Runner {
	return runner
}

// FindUpload returns the oldest regular file in dir named <fileID>_*. Processed
// outputs share the prefix and are always younger than their upload.
func FindUpload(dir, fileID string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	type candidate struct {
		name string
		mod  time.Time
	}
	var found []candidate
	prefix := fileID + "_"
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) || !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{e.Name(), info.ModTime()})
	}
	if len(found) == 0 {
		return "", ErrFileNotFound
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].mod.Equal(found[j].mod) {
			return found[i].name < found[j].name
		}
		return found[i].mod.Before(found[j].mod)
	})
	return filepath.Join(dir, found[0].name), nil
}

// Create applies the requested effect to an earlier upload
func Create(
	ctx context.Context,
	requestID string,
	req contracts.ProcessRequest,
) (
	*contracts.ProcessResponse,
	error,
) {
	if runner == nil {
		return nil, errors.New("effect runner is not initialized")
	}
	fileID, effect, factor := *req.FileID, *req.EffectType, *req.Factor
	uploadDir := configmanager.ConfStore.Upload.Dir

	inputPath, err := FindUpload(uploadDir, fileID)
	if err != nil {
		ymlogger.LogInfof(requestID, "No upload for file_id [%s]. Error: [%v]", fileID, err)
		return nil, err
	}
	if !effects.Known(effect) {
		return nil, ErrInvalidEffect
	}

	outputName := helper.OutputName(fileID, effect, factor)
	outputPath := filepath.Join(uploadDir, outputName)
	event := queuemanager.ProcessedEvent{RequestID: requestID, FileID: fileID, Effect: effect, Factor: factor}

	start := time.Now()
	result, err := runner.Run(ctx, requestID, effect, inputPath, outputPath, factor)
	event.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		ymlogger.LogErrorf(requestID, "Processing [%s] with [%s] failed. Error: [%v]", inputPath, effect, err)
		event.Status, event.Error = "failure", err.Error()
		notify(requestID, event)
		return nil, err
	}

	process := &contracts.Process{
		Success:       true,
		OutputFile:    outputName,
		Analysis:      contracts.AnalyzeForResponse(outputPath, configmanager.ConfStore.Upload.AnalysisMaxFrames),
		CommandOutput: result.Stdout,
	}
	if uploader != nil {
		url, err := uploader.Upload(ctx, requestID, outputPath)
		if err != nil {
			ymlogger.LogErrorf(requestID, "Failed to archive [%s]. Error: [%#v]", outputPath, err)
		} else {
			process.ArchiveURL = url
		}
	}
	event.Status, event.OutputFile, event.ArchiveURL = "success", outputName, process.ArchiveURL
	notify(requestID, event)

	response := new(contracts.ProcessResponse)
	responseData := new(contracts.SingleProcessResponse)
	responseData.ResourceData = process
	responseData.SetSuccess("File processed")
	response.ResponseData = *responseData
	return response, nil
}

func notify(requestID string, event queuemanager.ProcessedEvent) {
	if err := newrelic.SendCustomEvent(newrelic.ProcessingEvent, map[string]interface{}{
		"effect_type": event.Effect,
		"factor":      event.Factor,
		"latency_ms":  event.LatencyMS,
		"status":      event.Status,
	}); err != nil {
		ymlogger.LogErrorf("NewRelicMetric", "Failed to send "+newrelic.ProcessingEvent+" metric to newrelic. Error: [%#v]", err)
	}
	if err := publisher.Publish(event); err != nil {
		ymlogger.LogErrorf(requestID, "Failed to publish the processed event. Error: [%#v]", err)
	}
}
