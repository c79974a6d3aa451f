// Package metrics holds the metric names and tag conventions rope emits through a statsd.Sink.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/openstax/rope/internal/observability/errors"
	"github.com/openstax/rope/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultDropped = "dropped"
)

// BackendCall describes one request to the REST backend.
type BackendCall struct {
	Method   string
	Route    string // route template such as /api/user/{id}
	Status   int    // 0 when no response arrived
	Duration time.Duration
	Err      error
}

// EmitBackendCall records a REST backend request.
func EmitBackendCall(sink statsd.Sink, in BackendCall) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method": in.Method,
		"route":  in.Route,
		"result": ResultSuccess,
	}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("backend.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("backend.duration", in.Duration, CloneTags(tags))
	}
}

// EmitProbe records a session probe outcome, tagged with the resulting status.
func EmitProbe(sink statsd.Sink, status string, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"status": status}
	sink.Count("auth.probe", 1, tags)
	if d > 0 {
		sink.Timing("auth.probe.duration", d, CloneTags(tags))
	}
}

// EmitGuard records a route guard verdict.
func EmitGuard(sink statsd.Sink, regime string, redirected bool) {
	if sink == nil {
		return
	}
	sink.Count("auth.guard", 1, map[string]string{
		"regime":     regime,
		"redirected": strconv.FormatBool(redirected),
	})
}

// EmitCommand records a session command (login or logout) outcome.
func EmitCommand(sink statsd.Sink, command, result string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"command": command, "result": result}
	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("auth.command", 1, tags)
}

// EmitOperation records a page-level backend operation such as "user.add".
func EmitOperation(sink statsd.Sink, op string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"op": op, "result": ResultSuccess}
	if err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("service.operation", 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
