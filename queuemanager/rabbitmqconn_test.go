package queuemanager

import (
	"encoding/json"
	"testing"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
)

func TestURL(t *testing.T) {
	conf := configmanager.EventsConf{Host: "mq", Port: 5672, UserName: "u", Password: "p"}
	if got := URL(conf); got != "amqp://u:p@mq:5672" {
		t.Errorf("URL = %q", got)
	}
}

func TestParams(t *testing.T) {
	ev := ProcessedEvent{FileID: "id", Effect: "volume", Factor: 2, Status: "success", Timestamp: 42}

	t.Run("DefaultExchange", func(t *testing.T) {
		p, err := Params(configmanager.EventsConf{QueueName: "audio_processed", RoutingKey: "ignored", Durable: true}, ev)
		if err != nil {
			t.Fatal(err)
		}
		if p.Exchange != "" || p.RoutingKey != "audio_processed" || !p.Persistent {
			t.Errorf("unexpected params %+v", p)
		}
		var got ProcessedEvent
		if err := json.Unmarshal(p.Msg, &got); err != nil {
			t.Fatal(err)
		}
		if got != ev {
			t.Errorf("body = %+v, want %+v", got, ev)
		}
	})

	t.Run("NamedExchange", func(t *testing.T) {
		p, err := Params(configmanager.EventsConf{Exchange: "audio", QueueName: "q", RoutingKey: "processed"}, ProcessedEvent{})
		if err != nil {
			t.Fatal(err)
		}
		if p.Exchange != "audio" || p.RoutingKey != "processed" || p.Persistent {
			t.Errorf("unexpected params %+v", p)
		}
		var got ProcessedEvent
		json.Unmarshal(p.Msg, &got)
		if got.Timestamp == 0 {
			t.Error("timestamp not filled")
		}
	})
}

func TestNilPublisher(t *testing.T) {
	var p *Publisher
	if err := p.Publish(ProcessedEvent{}); err != nil {
		t.Errorf("nil publisher should drop events, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Error(err)
	}
}
