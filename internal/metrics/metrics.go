package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/readingtime/readingtime/pkg/field"
	"github.com/readingtime/readingtime/pkg/types"
)

// Metric names exposed by Registry.
const (
	EventsTotal  = "readingtime_events_total"
	Minutes      = "readingtime_minutes"
	Words        = "readingtime_words"
	EmbedObjects = "readingtime_embedded_objects"
	Overridden   = "readingtime_overridden"
)

type eventKey struct {
	kind   field.EventKind
	locale string
}

// Registry counts controller activity and tracks the latest result per
// locale. It implements field.Recorder.
type Registry struct {
	mu      sync.Mutex
	events  map[eventKey]uint64
	results map[string]types.Result
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		events:  make(map[eventKey]uint64),
		results: make(map[string]types.Result),
	}
}

// Observe implements field.Recorder.
func (r *Registry) Observe(kind field.EventKind, locale string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventKey{kind, locale}]++
}

// Count returns how often kind was observed for locale.
func (r *Registry) Count(kind field.EventKind, locale string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[eventKey{kind, locale}]
}

// SetResult records the current value of a locale's reading-time field.
func (r *Registry) SetResult(locale string, res types.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[locale] = res
}

// Gather builds the metric families in a stable order.
func (r *Registry) Gather() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := family(EventsTotal, "Reading-time controller events by kind.", dto.MetricType_COUNTER)
	keys := make([]eventKey, 0, len(r.events))
	for k := range r.events {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].locale != keys[j].locale {
			return keys[i].locale < keys[j].locale
		}
		return keys[i].kind < keys[j].kind
	})
	for _, k := range keys {
		v := float64(r.events[k])
		events.Metric = append(events.Metric, &dto.Metric{
			Label:   labels("kind", k.kind.String(), "locale", k.locale),
			Counter: &dto.Counter{Value: &v},
		})
	}

	minutes := family(Minutes, "Current reading time in minutes.", dto.MetricType_GAUGE)
	words := family(Words, "Word count behind the current reading time.", dto.MetricType_GAUGE)
	embeds := family(EmbedObjects, "Embedded objects counted in the current reading time.", dto.MetricType_GAUGE)
	over := family(Overridden, "1 when the current reading time was entered manually.", dto.MetricType_GAUGE)

	locales := make([]string, 0, len(r.results))
	for l := range r.results {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	for _, l := range locales {
		res := r.results[l]
		m, _ := res.Minutes.Float64()
		overridden := 0.0
		if res.Overridden {
			overridden = 1
		}
		minutes.Metric = append(minutes.Metric, gauge(m, "locale", l))
		words.Metric = append(words.Metric, gauge(float64(res.Words), "locale", l))
		embeds.Metric = append(embeds.Metric,
			gauge(float64(res.Assets), "locale", l, "type", "asset"),
			gauge(float64(res.Entries), "locale", l, "type", "entry"),
		)
		over.Metric = append(over.Metric, gauge(overridden, "locale", l))
	}

	out := []*dto.MetricFamily{events}
	if len(locales) > 0 {
		out = append(out, minutes, words, embeds, over)
	}
	return out
}

// WriteText writes every family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	for _, mf := range r.Gather() {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler serves the registry in the format negotiated from the request's
// Accept header.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		format := expfmt.Negotiate(req.Header)
		w.Header().Set("Content-Type", string(format))
		enc := expfmt.NewEncoder(w, format)
		for _, mf := range r.Gather() {
			if len(mf.Metric) == 0 {
				continue
			}
			if err := enc.Encode(mf); err != nil {
				return
			}
		}
	})
}

func family(name, help string, typ dto.MetricType) *dto.MetricFamily {
	return &dto.MetricFamily{Name: &name, Help: &help, Type: typ.Enum()}
}

func gauge(v float64, kv ...string) *dto.Metric {
	return &dto.Metric{Label: labels(kv...), Gauge: &dto.Gauge{Value: &v}}
}

func labels(kv ...string) []*dto.LabelPair {
	out := make([]*dto.LabelPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		name, value := kv[i], kv[i+1]
		out = append(out, &dto.LabelPair{Name: &name, Value: &value})
	}
	return out
}
