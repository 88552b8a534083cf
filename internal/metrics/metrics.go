// Package metrics expone el estado del tracker en formato de texto Prometheus.
package metrics

import (
	"bytes"
	"net/http"

	"medicine-tracker/internal/domain/tracker"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const namespace = "medtracker_"

type StatsSource interface {
	Stats() tracker.Stats
}

// ReminderCounter lo implementa reminders.Scheduler.
type ReminderCounter interface {
	Delivered() int64
	Failed() int64
}

// Families arma las métricas actuales. reminders puede ser nil (scheduler apagado).
func Families(stats StatsSource, reminders ReminderCounter) []*dto.MetricFamily {
	st := stats.Stats()

	out := []*dto.MetricFamily{
		gauge("medications", "Medications in the last fetched snapshot.", float64(st.Medications)),
		gauge("medications_expiring_soon", "Medications expiring within the next 7 days.", float64(st.ExpiringSoon)),
		gauge("medications_expired", "Medications already past their expiration date.", float64(st.Expired)),
		gauge("doses_taken", "Dose slots marked as taken today.", float64(st.Progress.Taken)),
		gauge("doses_total", "Dose slots in today's checklist.", float64(st.Progress.Total)),
		gauge("progress_percent", "Checklist completion percentage.", float64(st.Progress.Percentage)),
	}
	if reminders != nil {
		out = append(out,
			counter("reminders_delivered_total", "Dose reminders delivered as notifications.", float64(reminders.Delivered())),
			counter("reminders_failed_total", "Dose reminders that could not be delivered.", float64(reminders.Failed())),
		)
	}
	return out
}

func Handler(stats StatsSource, reminders ReminderCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		for _, mf := range Families(stats, reminders) {
			if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
				http.Error(w, "encode metrics", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(namespace + name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

func counter(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(namespace + name),
		Help:   proto.String(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(v)}}},
	}
}
