// Package metrics wires a Session's activity into Prometheus, the way
// absmach/magistrala's service layers expose a client_golang Collector
// alongside their domain logic. Wiring a *Collector into a Session is
// opt-in; a nil Collector is always safe to use.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the Prometheus instruments for a Session. A Session
// records only PDUsSent and PDUsReceived (through RecordSent and
// RecordReceived); the ping counters and the flow-control gauges are
// registered but not updated by anything in this module.
type Collector struct {
	PDUsSent       *prometheus.CounterVec
	PDUsReceived   *prometheus.CounterVec
	PingsSent      prometheus.Counter
	PingsSucceeded prometheus.Counter
	PingsFailed    prometheus.Counter
	SendRate       prometheus.Gauge
	CongestionState prometheus.Gauge
}

// NewCollector builds a Collector and registers its instruments against
// reg. Pass prometheus.DefaultRegisterer for process-global metrics, or
// a fresh prometheus.NewRegistry() in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		PDUsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smpp",
			Name:      "pdus_sent_total",
			Help:      "Total PDUs sent, labeled by command name.",
		}, []string{"command"}),
		PDUsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smpp",
			Name:      "pdus_received_total",
			Help:      "Total PDUs received, labeled by command name.",
		}, []string{"command"}),
		PingsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smpp",
			Name:      "keepalive_pings_sent_total",
			Help:      "Total enquire_link probes sent.",
		}),
		PingsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smpp",
			Name:      "keepalive_pings_succeeded_total",
			Help:      "Total enquire_link probes answered successfully.",
		}),
		PingsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smpp",
			Name:      "keepalive_pings_failed_total",
			Help:      "Total enquire_link probes that timed out or failed.",
		}),
		SendRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smpp",
			Name:      "flow_control_send_rate",
			Help:      "Current recommended send rate in messages per second.",
		}),
		CongestionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smpp",
			Name:      "flow_control_congestion_state",
			Help:      "Last known SMSC-reported congestion state, 0-100.",
		}),
	}
	reg.MustRegister(
		c.PDUsSent, c.PDUsReceived,
		c.PingsSent, c.PingsSucceeded, c.PingsFailed,
		c.SendRate, c.CongestionState,
	)
	return c
}

// RecordSent increments the sent-PDU counter for the given command name.
func (c *Collector) RecordSent(command string) {
	if c == nil {
		return
	}
	c.PDUsSent.WithLabelValues(command).Inc()
}

// RecordReceived increments the received-PDU counter for the given
// command name.
func (c *Collector) RecordReceived(command string) {
	if c == nil {
		return
	}
	c.PDUsReceived.WithLabelValues(command).Inc()
}
