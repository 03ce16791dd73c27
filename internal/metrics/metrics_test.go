package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/readingtime/readingtime/pkg/field"
	"github.com/readingtime/readingtime/pkg/override"
	"github.com/readingtime/readingtime/pkg/types"
)

var _ field.Recorder = (*Registry)(nil)

// parse decodes text exposition the same way a scraper would.
func parse(t *testing.T, text string) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parse exposition: %v\n%s", err, text)
	}
	return mfs
}

func value(mf *dto.MetricFamily, labels map[string]string) (float64, bool) {
	for _, m := range mf.GetMetric() {
		match := true
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				match = false
			}
		}
		if !match {
			continue
		}
		if m.Counter != nil {
			return m.Counter.GetValue(), true
		}
		return m.Gauge.GetValue(), true
	}
	return 0, false
}

func TestRegistry_Events(t *testing.T) {
	r := New()
	for i := 0; i < 3; i++ {
		r.Observe(field.Scheduled, "en-US")
	}
	r.Observe(field.Recomputed, "en-US")
	r.Observe(field.Ignored, "de-DE")

	if got := r.Count(field.Scheduled, "en-US"); got != 3 {
		t.Errorf("Count(scheduled) = %d, want 3", got)
	}

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	mfs := parse(t, buf.String())
	events := mfs[EventsTotal]
	if events == nil || events.GetType() != dto.MetricType_COUNTER {
		t.Fatalf("%s missing or not a counter: %v", EventsTotal, events)
	}

	tests := []struct {
		kind, locale string
		want         float64
	}{
		{"scheduled", "en-US", 3},
		{"recomputed", "en-US", 1},
		{"ignored", "de-DE", 1},
	}
	for _, tc := range tests {
		got, ok := value(events, map[string]string{"kind": tc.kind, "locale": tc.locale})
		if !ok || got != tc.want {
			t.Errorf("%s{kind=%s,locale=%s} = %v (found %v), want %v", EventsTotal, tc.kind, tc.locale, got, ok, tc.want)
		}
	}
	if _, ok := mfs[Minutes]; ok {
		t.Errorf("%s exposed without any result", Minutes)
	}
}

func TestRegistry_Results(t *testing.T) {
	r := New()
	over, _ := override.Parse("3.5", types.DefaultConfig())
	r.SetResult("en-US", over)
	r.SetResult("de-DE", types.Result{Minutes: types.RoundMinutes(0.52), Words: 5, Assets: 2, Entries: 1})

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	mfs := parse(t, buf.String())

	if v, _ := value(mfs[Minutes], map[string]string{"locale": "en-US"}); v != 3.5 {
		t.Errorf("minutes{en-US} = %v, want 3.5", v)
	}
	if v, _ := value(mfs[Words], map[string]string{"locale": "en-US"}); v != 788 {
		t.Errorf("words{en-US} = %v, want 788", v)
	}
	if v, _ := value(mfs[Overridden], map[string]string{"locale": "en-US"}); v != 1 {
		t.Errorf("overridden{en-US} = %v, want 1", v)
	}
	if v, _ := value(mfs[Overridden], map[string]string{"locale": "de-DE"}); v != 0 {
		t.Errorf("overridden{de-DE} = %v, want 0", v)
	}
	if v, _ := value(mfs[EmbedObjects], map[string]string{"locale": "de-DE", "type": "asset"}); v != 2 {
		t.Errorf("embedded{de-DE,asset} = %v, want 2", v)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.Observe(field.Overrode, "en-US")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, ok := value(mfs[EventsTotal], map[string]string{"kind": "overridden"}); !ok || v != 1 {
		t.Errorf("overridden events = %v, want 1", v)
	}
}
