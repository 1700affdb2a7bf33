package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/core/process"
	"bitbucket.org/yellowmessenger/audiolab/janitor"
	"bitbucket.org/yellowmessenger/audiolab/newrelic"
	"bitbucket.org/yellowmessenger/audiolab/queuemanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/archive"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
	"bitbucket.org/yellowmessenger/audiolab/utils/ratelimit"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

func configFile() string {
	if f := os.Getenv(configmanager.EnvPrefix + "_CONFIG"); len(f) > 0 {
		return f
	}
	return "config.json"
}

func main() {
	// Initilize the config
	if err := configmanager.InitConfig(configFile()); err != nil {
		log.Fatalf("Error while initializing the config. Error: [%#v]", err)
	}
	conf := configmanager.ConfStore

	// Initiliaze YM logger
	if err := ymlogger.InitYMLogger(conf.LoggerConf); err != nil {
		log.Fatalf("Failed to initialize the logger. Err: [%#v]", err)
	}

	// Initialize new relic app
	if err := newrelic.InitNewRelicApp(conf.NewRelic); err != nil {
		log.Fatalf("Error while initializing new relic app. Error: [%#v]", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := os.MkdirAll(conf.Upload.Dir, 0755); err != nil {
		log.Fatalf("Failed to create the upload folder. Error: [%#v]", err)
	}

	uploader, err := archive.New(conf.Archive)
	if err != nil {
		log.Fatalf("Failed to initialize the archive. Error: [%#v]", err)
	}

	var publisher *queuemanager.Publisher
	if conf.Events.Enabled {
		ymlogger.LogInfo("InitRabbitMQConn", "Initializing RabbitMQ Connection")
		publisher, err = queuemanager.InitRabbitMQConn(conf.Events)
		if err != nil {
			log.Fatalf("Failed to initialize Rabbit MQ Connection. Error: [%#v]", err)
		}
		defer publisher.Close()
	}

	limiter := ratelimit.New(
		conf.Effects.MaxRate,
		conf.Effects.Burst,
		time.Duration(conf.Effects.LatencyThresholdMS)*time.Millisecond,
		"EffectsRateLimit",
	)
	runner := effects.NewRunner(conf.Effects.BinDir, time.Duration(conf.Effects.TimeoutSeconds)*time.Second, limiter)
	process.Init(runner, uploader, publisher)

	// Start the upload sweeper
	go janitor.StartSweeper(ctx, conf.Upload.Dir,
		time.Duration(conf.Upload.RetentionMinutes)*time.Minute,
		time.Duration(conf.Upload.SweepIntervalSec)*time.Second)

	e := NewServer(conf.Server)

	address := fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
	ymlogger.LogInfof("HTTPHandler", "Listening for requests on %s", address)
	if err := e.Start(address); err != nil {
		ymlogger.LogCritical("HTTPHandler", "Failed to start server!", err)
		os.Exit(1)
	}
}
