package probe

import (
	"errors"
	"fmt"
	"strings"
)

// MetricType is either "status" or "performance".
type MetricType string

const (
	MetricTypeStatus      MetricType = "status"
	MetricTypePerformance MetricType = "performance"
)

// DefaultSpecVersion is the Grid Monitoring Probe specification version
// metrics conform to unless stated otherwise.
const DefaultSpecVersion = "0.91"

var (
	ErrInvalidMetricType = errors.New("invalid metricType")
	ErrMissingDataType   = errors.New("performance metric requires a dataType")
)

// Metric describes a check supported by a probe.
type Metric struct {
	ServiceType      string
	Name             string
	Type             MetricType
	DataType         string // float, int, string or boolean; performance metrics only
	SpecVersion      string
	EnabledByDefault bool
}

// UnknownMetric is reported when no metric was selected or the selection is
// not registered.
var UnknownMetric = Metric{
	ServiceType: "UNKNOWN",
	Name:        "UNKNOWN",
	Type:        MetricTypeStatus,
	SpecVersion: DefaultSpecVersion,
}

// NewMetric validates and builds a Metric. The dataType is ignored for status
// metrics.
func NewMetric(serviceType, name string, mtype MetricType, dataType string) (Metric, error) {
	switch mtype {
	case MetricTypeStatus:
		dataType = ""
	case MetricTypePerformance:
		if dataType == "" {
			return Metric{}, fmt.Errorf("metric %s: %w", name, ErrMissingDataType)
		}
	default:
		return Metric{}, fmt.Errorf("metric %s: %w %q", name, ErrInvalidMetricType, mtype)
	}
	return Metric{
		ServiceType: serviceType,
		Name:        name,
		Type:        mtype,
		DataType:    dataType,
		SpecVersion: DefaultSpecVersion,
	}, nil
}

// MustMetric is like NewMetric but panics on error. Intended for package-level
// metric declarations.
func MustMetric(serviceType, name string, mtype MetricType, dataType string) Metric {
	m, err := NewMetric(serviceType, name, mtype, dataType)
	if err != nil {
		panic(err)
	}
	return m
}

// Describe returns the metric description in the WLCG format.
func (m Metric) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "serviceType: %s\nmetricName: %s\nmetricType: %s\n", m.ServiceType, m.Name, m.Type)
	if m.Type == MetricTypePerformance {
		fmt.Fprintf(&b, "dataType: %s\n", m.DataType)
	}
	return b.String()
}

// Registry holds the metrics a probe supports, in declaration order.
type Registry struct {
	metrics []Metric
}

// Register adds metrics to the registry. A metric with an already registered
// name replaces the earlier one.
func (r *Registry) Register(metrics ...Metric) {
	for _, m := range metrics {
		if i := r.index(m.Name); i >= 0 {
			r.metrics[i] = m
			continue
		}
		r.metrics = append(r.metrics, m)
	}
}

// List returns all registered metrics.
func (r *Registry) List() []Metric {
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Get looks up a metric by name.
func (r *Registry) Get(name string) (Metric, bool) {
	if i := r.index(name); i >= 0 {
		return r.metrics[i], true
	}
	return Metric{}, false
}

// Describe returns the description of every metric followed by EOT.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, m := range r.metrics {
		b.WriteString(m.Describe())
	}
	b.WriteString("EOT\n")
	return b.String()
}

func (r *Registry) index(name string) int {
	for i, m := range r.metrics {
		if m.Name == name {
			return i
		}
	}
	return -1
}
