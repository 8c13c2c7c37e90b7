package plot

import (
	"strings"
	"testing"
)

func TestSeriesContainsCaption(t *testing.T) {
	out := Series([]float64{0, 1, 2, 1, 0}, "bounce")
	if !strings.Contains(out, "bounce") {
		t.Error("expected caption in rendered plot")
	}
}

func TestSeriesEmptyReturnsEmpty(t *testing.T) {
	if Series(nil, "x") != "" {
		t.Error("expected empty string for no data")
	}
}

func TestMultiRendersInOrder(t *testing.T) {
	series := map[string][]float64{
		"a": {0, 1, 2},
		"b": {2, 1, 0},
	}
	out := Multi(series, []string{"a", "b"})
	ai := strings.Index(out, "a")
	bi := strings.Index(out, "b")
	if ai == -1 || bi == -1 || ai > bi {
		t.Errorf("expected a before b in output: %q", out)
	}
}
