// Package core holds the snapshot data model shared by collectors,
// renderers and exporters.
package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Metric struct {
	Name     string   `json:"name"`
	Value    Value    `json:"value"`
	Severity Severity `json:"severity"`
}

type Row struct {
	Cells    []string `json:"cells"`
	Severity Severity `json:"severity"`
}

// Table carries per-record output (processes, users, mounts) that does not
// fit a single metric.
type Table struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

func NewTable(name string, headers ...string) Table {
	return Table{Name: name, Headers: headers}
}

func (t *Table) Append(sev Severity, cells ...string) {
	t.Rows = append(t.Rows, Row{Cells: cells, Severity: sev})
}

func (t Table) Severity() Severity {
	sev := SeverityInfo
	for _, r := range t.Rows {
		sev = MaxSeverity(sev, r.Severity)
	}
	return sev
}

// Category is an ordered set of metrics for one collector. Its severity is
// kept at the maximum of everything added to it.
type Category struct {
	key      string
	title    string
	metrics  []Metric
	index    map[string]int
	tables   []Table
	severity Severity
	frozen   bool
}

func NewCategory(key, title string) *Category {
	return &Category{
		key:   key,
		title: title,
		index: make(map[string]int),
	}
}

func (c *Category) Key() string   { return c.key }
func (c *Category) Title() string { return c.title }

// Add appends m, or replaces the value of an existing metric with the same
// name in place.
func (c *Category) Add(m Metric) {
	if c.frozen {
		return
	}
	if i, ok := c.index[m.Name]; ok {
		c.metrics[i] = m
		c.recompute()
		return
	}
	c.index[m.Name] = len(c.metrics)
	c.metrics = append(c.metrics, m)
	c.severity = MaxSeverity(c.severity, m.Severity)
}

func (c *Category) Set(name string, v Value, sev Severity) {
	c.Add(Metric{Name: name, Value: v, Severity: sev})
}

func (c *Category) Info(name string, v Value) {
	c.Add(Metric{Name: name, Value: v, Severity: SeverityInfo})
}

func (c *Category) AddTable(t Table) {
	if c.frozen {
		return
	}
	c.tables = append(c.tables, t)
	c.severity = MaxSeverity(c.severity, t.Severity())
}

func (c *Category) Metric(name string) (Metric, bool) {
	i, ok := c.index[name]
	if !ok {
		return Metric{}, false
	}
	return c.metrics[i], true
}

func (c *Category) Metrics() []Metric {
	return append([]Metric(nil), c.metrics...)
}

func (c *Category) Table(name string) (Table, bool) {
	for _, t := range c.tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func (c *Category) Tables() []Table {
	return append([]Table(nil), c.tables...)
}

func (c *Category) Severity() Severity { return c.severity }

func (c *Category) recompute() {
	sev := SeverityInfo
	for _, m := range c.metrics {
		sev = MaxSeverity(sev, m.Severity)
	}
	for _, t := range c.tables {
		sev = MaxSeverity(sev, t.Severity())
	}
	c.severity = sev
}

func (c *Category) MarshalJSON() ([]byte, error) {
	data := make(orderedMetrics, len(c.metrics))
	copy(data, c.metrics)
	return json.Marshal(struct {
		Category string         `json:"category"`
		Title    string         `json:"title"`
		Severity Severity       `json:"severity"`
		Data     orderedMetrics `json:"data"`
		Tables   []Table        `json:"tables,omitempty"`
	}{c.key, c.title, c.severity, data, c.tables})
}

// orderedMetrics marshals as a JSON object preserving collection order.
type orderedMetrics []Metric

func (o orderedMetrics) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// Snapshot is the complete, immutable result of one collection run.
type Snapshot struct {
	id          uuid.UUID
	collectedAt time.Time
	verbosity   Verbosity
	hostname    string
	categories  []*Category
}

func (s *Snapshot) ID() uuid.UUID { return s.id }
func (s *Snapshot) CollectedAt() time.Time { return s.collectedAt }
func (s *Snapshot) Verbosity() Verbosity { return s.verbosity }
func (s *Snapshot) Hostname() string { return s.hostname }
func (s *Snapshot) Categories() []*Category { return append([]*Category(nil), s.categories...) }
func (s *Snapshot) Len() int { return len(s.categories) }

func (s *Snapshot) Category(key string) (*Category, bool) {
	for _, c := range s.categories {
		if c.key == key {
			return c, true
		}
	}
	return nil, false
}

type Summary struct {
	Categories int    `json:"categories"`
	Critical   int    `json:"critical"`
	Warnings   int    `json:"warnings"`
	Overall    string `json:"overall"`
}

func (s Summary) Healthy() bool { return s.Critical == 0 }

func (s *Snapshot) Summary() Summary {
	sum := Summary{Categories: len(s.categories)}
	for _, c := range s.categories {
		switch c.Severity() {
		case SeverityCritical:
			sum.Critical++
		case SeverityWarn:
			sum.Warnings++
		}
	}
	sum.Overall = "HEALTHY"
	if !sum.Healthy() {
		sum.Overall = "ISSUES DETECTED"
	}
	return sum
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	cats := make(orderedCategories, len(s.categories))
	copy(cats, s.categories)
	return json.Marshal(struct {
		ID          string            `json:"id"`
		CollectedAt time.Time         `json:"collected_at"`
		Verbosity   string            `json:"verbosity"`
		Hostname    string            `json:"hostname,omitempty"`
		Summary     Summary           `json:"summary"`
		Categories  orderedCategories `json:"categories"`
	}{s.id.String(), s.collectedAt, s.verbosity.String(), s.hostname, s.Summary(), cats})
}

type orderedCategories []*Category

func (o orderedCategories) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, c := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(c.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// SnapshotBuilder accumulates categories until Build freezes them.
type SnapshotBuilder struct {
	snap  *Snapshot
	built bool
}

func NewSnapshotBuilder(v Verbosity, at time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{snap: &Snapshot{
		id:          uuid.New(),
		collectedAt: at,
		verbosity:   v,
	}}
}

func (b *SnapshotBuilder) SetHostname(name string) {
	b.snap.hostname = name
}

// Add appends c, replacing a previously added category with the same key.
func (b *SnapshotBuilder) Add(c *Category) {
	if b.built || c == nil {
		return
	}
	for i, existing := range b.snap.categories {
		if existing.key == c.key {
			b.snap.categories[i] = c
			return
		}
	}
	b.snap.categories = append(b.snap.categories, c)
}

func (b *SnapshotBuilder) Build() *Snapshot {
	b.built = true
	for _, c := range b.snap.categories {
		c.frozen = true
	}
	return b.snap
}
