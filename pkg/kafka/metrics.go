package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProducerMessagesPublished counts publish attempts by topic and outcome ("ok", "error").
var ProducerMessagesPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_producer_messages_published_total",
		Help: "Total number of Kafka messages published, by outcome",
	},
	[]string{"topic", "status"},
)
