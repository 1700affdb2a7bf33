package health

import (
	"context"
	"os"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
)

func Get(
	ctx context.Context,
	runner *effects.Runner,
) (
	*contracts.HealthResponse,
	error,
) {
	conf := configmanager.ConfStore
	data := &contracts.Health{
		UploadDir: uploadDirHealth(conf.Upload.Dir),
		Effects:   make(map[string]bool),
		Archive:   conf.Archive.Provider,
		Events:    conf.Events.Enabled,
	}
	for _, name := range effects.Effects() {
		data.Effects[name] = false
	}
	if runner != nil {
		data.Effects = runner.Available()
		data.RateFraction = runner.Fraction()
	}

	response := new(contracts.HealthResponse)
	responseData := new(contracts.SingleHealthResponse)
	responseData.ResourceData = data
	responseData.Msg = "Successful Request"
	responseData.Status = "success"
	response.ResponseData = *responseData
	return response, nil
}

func uploadDirHealth(dir string) contracts.UploadDirHealth {
	h := contracts.UploadDirHealth{Path: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return h
	}
	h.Exists = true
	h.Files = len(entries)

	probe, err := os.CreateTemp(dir, ".health-*")
	if err == nil {
		h.Writable = true
		name := probe.Name()
		probe.Close()
		os.Remove(name)
	}
	return h
}
