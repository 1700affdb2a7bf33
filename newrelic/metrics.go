package newrelic

import (
	"errors"
	"os"
)

// ProcessingEvent is the custom event recorded per effect run
const ProcessingEvent = "AudioProcessing"

// SendCustomEvent sends custom event to newrelic
func SendCustomEvent(metricName string, metric map[string]interface{}) error {
	if App == nil {
		return nil
	}
	hostName, err := os.Hostname()
	if err != nil {
		return errors.New("Failed sending the metric. Hostname not found")
	}
	metric["host"] = hostName
	App.RecordCustomEvent(metricName, metric)
	return nil
}
