package fetchxtest

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// GetMetricValue returns the value of the metric named metricName whose labels
// include labels. Counters and gauges report their value, histograms their
// sample count.
func GetMetricValue(registry prometheus.Gatherer, metricName string, labels map[string]string) (float64, error) {
	families, err := registry.Gather()
	if err != nil {
		return 0, fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range families {
		if family.GetName() != metricName {
			continue
		}

		for _, metric := range family.GetMetric() {
			if !matchesLabels(metric, labels) {
				continue
			}
			switch {
			case metric.Counter != nil:
				return metric.Counter.GetValue(), nil
			case metric.Gauge != nil:
				return metric.Gauge.GetValue(), nil
			case metric.Histogram != nil:
				return float64(metric.Histogram.GetSampleCount()), nil
			}
		}
	}

	return 0, fmt.Errorf("metric %q with labels %v not found", metricName, labels)
}

// matchesLabels checks if a metric carries all expected labels.
func matchesLabels(metric *dto.Metric, expectedLabels map[string]string) bool {
	metricLabels := make(map[string]string, len(metric.GetLabel()))
	for _, label := range metric.GetLabel() {
		metricLabels[label.GetName()] = label.GetValue()
	}

	for key, expectedValue := range expectedLabels {
		if actualValue, exists := metricLabels[key]; !exists || actualValue != expectedValue {
			return false
		}
	}

	return true
}

// AssertMetricValue asserts that a metric with specific labels has the expected value.
func AssertMetricValue(t *testing.T, registry prometheus.Gatherer, metricName string, labels map[string]string, expected float64) {
	t.Helper()

	actual, err := GetMetricValue(registry, metricName, labels)
	if err != nil {
		t.Fatalf("failed to get metric value: %v", err)
	}

	if actual != expected {
		t.Errorf("metric %q with labels %v: got %v, want %v", metricName, labels, actual, expected)
	}
}
