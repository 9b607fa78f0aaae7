// Package export writes snapshots to interchange files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"horizonx-probe/internal/core"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatLog  Format = "log"
)

const fileLayout = "snapshot_2006_01_02_15_04_05"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatLog:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want json, csv or log)", s)
}

// FileName is the name Write uses for a snapshot taken at now.
func FileName(f Format, now time.Time) string {
	return now.Format(fileLayout) + "." + string(f)
}

// Write encodes snap into dir, creating it when needed, and returns the
// path of the new file.
func Write(snap *core.Snapshot, f Format, dir string, now time.Time) (string, error) {
	data, err := Encode(snap, f)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(f, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func Encode(snap *core.Snapshot, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return encodeJSON(snap)
	case FormatCSV:
		return encodeCSV(snap)
	case FormatLog:
		return encodeLog(snap), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

func encodeJSON(snap *core.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeCSV(snap *core.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Category", "Severity", "Key", "Value"}); err != nil {
		return nil, err
	}

	for _, cat := range snap.Categories() {
		sev := cat.Severity().String()
		for _, m := range cat.Metrics() {
			val, err := csvValue(m.Value)
			if err != nil {
				return nil, err
			}
			if err := w.Write([]string{cat.Key(), sev, m.Name, val}); err != nil {
				return nil, err
			}
		}
		for _, t := range cat.Tables() {
			for i, row := range t.Rows {
				cell, err := rowObject(t.Headers, row.Cells)
				if err != nil {
					return nil, err
				}
				key := fmt.Sprintf("%s #%d", t.Name, i+1)
				if err := w.Write([]string{cat.Key(), sev, key, cell}); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvValue(v core.Value) (string, error) {
	switch v.Kind() {
	case core.KindList, core.KindMap:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode value: %w", err)
		}
		return string(b), nil
	}
	return v.String(), nil
}

// rowObject keeps header order, which a map would lose.
func rowObject(headers, cells []string) (string, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, cell := range cells {
		name := fmt.Sprintf("col%d", i+1)
		if i < len(headers) {
			name = headers[i]
		}
		k, err := json.Marshal(name)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(cell)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.String(), nil
}

func encodeLog(snap *core.Snapshot) []byte {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("LINUX SYSTEM SNAPSHOT\n")
	fmt.Fprintf(&b, "ID: %s\n", snap.ID())
	fmt.Fprintf(&b, "Collected: %s\n", snap.CollectedAt().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run Level: %s (%s)\n", snap.Verbosity().RunLevel(), snap.Verbosity())
	if snap.Hostname() != "" {
		fmt.Fprintf(&b, "Host: %s\n", snap.Hostname())
	}
	b.WriteString(rule + "\n\n")

	for _, cat := range snap.Categories() {
		fmt.Fprintf(&b, "[%s] %s\n", cat.Severity(), cat.Title())
		for _, m := range cat.Metrics() {
			fmt.Fprintf(&b, "  %-28s %s", m.Name+":", m.Value.String())
			if m.Severity != core.SeverityInfo {
				fmt.Fprintf(&b, " (%s)", m.Severity)
			}
			b.WriteByte('\n')
		}
		for _, t := range cat.Tables() {
			if len(t.Rows) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", t.Name, strings.Join(t.Headers, " | "))
			for _, row := range t.Rows {
				fmt.Fprintf(&b, "    %s\n", strings.Join(row.Cells, " | "))
			}
		}
		b.WriteByte('\n')
	}

	sum := snap.Summary()
	fmt.Fprintf(&b, "Summary: %d categories, %d warnings, %d critical, overall %s\n",
		sum.Categories, sum.Warnings, sum.Critical, sum.Overall)
	return []byte(b.String())
}
