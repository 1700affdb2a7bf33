// Package queuemanager publishes processed-file events to RabbitMQ.
package queuemanager

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/streadway/amqp"
)

// ProcessedEvent is published after every /process attempt
type ProcessedEvent struct {
	RequestID  string  `json:"request_id"`
	FileID     string  `json:"file_id"`
	Effect     string  `json:"effect_type"`
	Factor     float64 `json:"factor"`
	OutputFile string  `json:"output_file,omitempty"`
	ArchiveURL string  `json:"archive_url,omitempty"`
	LatencyMS  int64   `json:"latency_ms"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

// QueueMessageParams describes a single publish
type QueueMessageParams struct {
	Exchange   string
	RoutingKey string
	Msg        []byte
	Persistent bool
}

// Publisher sends processed events to the broker
type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	conf configmanager.EventsConf
}

// URL builds the broker address from the config
func URL(conf configmanager.EventsConf) string {
	return "amqp://" + fmt.Sprintf("%s:%s@%s:%s", conf.UserName, conf.Password, conf.Host, strconv.Itoa(conf.Port))
}

// InitRabbitMQConn connects and declares the event queue. When an exchange is
// configured the queue is bound to it with the routing key.
func InitRabbitMQConn(conf configmanager.EventsConf) (*Publisher, error) {
	conn, err := amqp.Dial(URL(conf))
	if err != nil {
		ymlogger.LogErrorf("InitRabbitMQ", "Failed to connect to RabbitMQ. Error: [%#v]", err)
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		ymlogger.LogErrorf("InitRabbitMQ", "Failed to open a channel. Error: [%#v]", err)
		conn.Close()
		return nil, err
	}
	q, err := ch.QueueDeclare(conf.QueueName, conf.Durable, false, false, false, nil)
	if err != nil {
		ymlogger.LogErrorf("InitRabbitMQ", "Failed to declare the queue. Error: [%#v]", err)
		conn.Close()
		return nil, err
	}
	if len(conf.Exchange) > 0 {
		if err = ch.ExchangeDeclare(conf.Exchange, amqp.ExchangeDirect, conf.Durable, false, false, false, nil); err != nil {
			ymlogger.LogErrorf("InitRabbitMQ", "Failed to declare the exchange. Error: [%#v]", err)
			conn.Close()
			return nil, err
		}
		if err = ch.QueueBind(q.Name, conf.RoutingKey, conf.Exchange, false, nil); err != nil {
			ymlogger.LogErrorf("InitRabbitMQ", "Failed to bind the queue. Error: [%#v]", err)
			conn.Close()
			return nil, err
		}
	}
	ymlogger.LogDebugf("QueueStats", "QueueName: [%s] NumOfMessages: [%d]", q.Name, q.Messages)
	return &Publisher{conn: conn, ch: ch, conf: conf}, nil
}

// Params turns an event into a publish for this config. Without an exchange
// the default exchange routes by queue name.
func Params(conf configmanager.EventsConf, ev ProcessedEvent) (*QueueMessageParams, error) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	p := &QueueMessageParams{Exchange: conf.Exchange, RoutingKey: conf.RoutingKey, Msg: body, Persistent: conf.Durable}
	if len(conf.Exchange) == 0 {
		p.RoutingKey = conf.QueueName
	}
	return p, nil
}

// Publish sends ev. A nil publisher drops it.
func (p *Publisher) Publish(ev ProcessedEvent) error {
	if p == nil {
		return nil
	}
	params, err := Params(p.conf, ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return params.Enqueue(p.ch)
}

// Close the channel and the connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.ch.Close()
	return p.conn.Close()
}

// Enqueue publishes the message on ch
func (param *QueueMessageParams) Enqueue(ch *amqp.Channel) error {
	msg := amqp.Publishing{
		ContentType: "application/json",
		Body:        param.Msg,
	}
	if param.Persistent {
		msg.DeliveryMode = amqp.Persistent
	}
	err := ch.Publish(param.Exchange, param.RoutingKey, false, false, msg)
	if err != nil {
		ymlogger.LogErrorf("EnqueueMsg", "Error while enqueuing the msg. Msg: [%s] Error: [%#v]", param.Msg, err)
		return err
	}
	return nil
}
