package newrelic

import (
	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// App contains the newrelic application. It stays usable when the agent is disabled.
var App *newrelic.Application

// InitNewRelicApp initializes the New Relic app. Without a license the agent is disabled.
func InitNewRelicApp(conf configmanager.NewRelicConf) error {
	var err error
	App, err = newrelic.NewApplication(
		newrelic.ConfigAppName(conf.AppName),
		newrelic.ConfigLicense(conf.License),
		newrelic.ConfigEnabled(len(conf.License) > 0),
	)
	if err != nil {
		return err
	}
	return nil
}
