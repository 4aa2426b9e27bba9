// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/cicerone/internal/models"
)

// Health reports process liveness. Always 200 while the process runs;
// the payload flags degradation when the store is closed or the AI
// breaker is open so dashboards can tell the difference.
//
// Method: GET
// Path: /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeOK := h.storeConnected()
	aiHealthy := h.ai != nil && h.ai.Healthy()

	status := "healthy"
	if !storeOK || (h.ai != nil && !aiHealthy) {
		status = "degraded"
	}

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":          status,
			"version":         "1.0.0",
			"uptime":          time.Since(h.startTime).Seconds(),
			"store_connected": storeOK,
			"ai_configured":   h.ai != nil,
			"ai_healthy":      aiHealthy,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// Ready reports readiness to serve traffic. Readiness hinges on the
// document store alone: with the AI breaker open the catalog, saved
// documents, and cached generations still answer, so the breaker state
// is reported but does not flip readiness.
//
// Method: GET
// Path: /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	storeOK := h.storeConnected()

	statusCode := http.StatusOK
	status := "ready"
	if !storeOK {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	breaker := "unconfigured"
	if h.ai != nil {
		breaker = h.ai.BreakerState()
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeOK,
			"breaker_state":   breaker,
			"ready_to_serve":  storeOK,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// storeConnected probes the document store with a cheap key-only count.
func (h *Handler) storeConnected() bool {
	if h.store == nil {
		return false
	}
	_, err := h.store.Stats()
	return err == nil
}

// Stats returns an operational snapshot: document counts, cache
// efficiency, per-endpoint latency percentiles, breaker state and
// request totals from the Prometheus registry. Admin only.
//
// Method: GET
// Path: /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data := map[string]interface{}{
		"uptime": time.Since(h.startTime).Seconds(),
	}

	if h.store != nil {
		if st, err := h.store.Stats(); err == nil {
			data["documents"] = st
		}
	}

	if h.resultCache != nil {
		cs := h.resultCache.GetStats()
		data["cache"] = map[string]interface{}{
			"hits":         cs.Hits,
			"misses":       cs.Misses,
			"evictions":    cs.Evictions,
			"total_keys":   cs.TotalKeys,
			"hit_rate_pct": h.resultCache.HitRate(),
			"last_cleanup": cs.LastCleanup,
		}
	}

	if h.perfMon != nil {
		data["endpoints"] = h.perfMon.Stats()
	}

	if h.ai != nil {
		data["ai"] = map[string]interface{}{
			"breaker_state": h.ai.BreakerState(),
			"healthy":       h.ai.Healthy(),
			"text_model":    h.ai.TextModel(),
		}
	}

	if h.hub != nil {
		data["websocket_clients"] = h.hub.GetClientCount()
	}

	if families, err := prometheus.DefaultGatherer.Gather(); err == nil {
		data["counters"] = map[string]interface{}{
			"api_requests":        counterTotal(families, "api_requests_total"),
			"generation_requests": counterTotal(families, "generation_requests_total"),
			"generation_retries":  counterTotal(families, "generation_retries_total"),
			"rate_limit_hits":     counterTotal(families, "api_rate_limit_hits_total"),
		}
	}

	respondSuccess(w, r, http.StatusOK, data, start, false)
}

// counterTotal sums a counter family across its label sets.
func counterTotal(families []*dto.MetricFamily, name string) float64 {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
