package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_api_requests_total",
			Help: "Total number of REST calls by surface and outcome",
		},
		[]string{"surface", "method", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portal_api_request_duration_seconds",
			Help: "Duration of REST calls in seconds",
		},
		[]string{"surface", "method"},
	)

	ChannelConnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_channel_connects_total",
			Help: "Total channel connection attempts by outcome",
		},
		[]string{"outcome"},
	)

	ChannelDisconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_channel_disconnects_total",
			Help: "Total channel disconnections after an established connection",
		},
	)

	ChannelEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_channel_events_total",
			Help: "Total inbound channel events by type",
		},
		[]string{"event"},
	)

	ChannelEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_channel_events_dropped_total",
			Help: "Inbound channel events dropped before dispatch",
		},
		[]string{"reason"},
	)

	NotificationsUnread = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_notifications_unread",
			Help: "Current unread notification count",
		},
	)

	ToastsShown = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_toasts_shown_total",
			Help: "Total toasts enqueued by kind",
		},
		[]string{"kind"},
	)

	ToastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_toasts_dropped_total",
			Help: "Toasts evicted because the queue was full",
		},
	)
)
