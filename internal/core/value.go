package core

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
	KindList
	KindMap
)

// Value is one of: a scalar number, a formatted string, a short list or a
// short mapping.
type Value struct {
	kind    ValueKind
	number  float64
	integer bool
	text    string
	sampled bool
	list    []string
	mapping map[string]string
}

func Number(v float64) Value {
	return Value{kind: KindNumber, number: v}
}

func Int(v int64) Value {
	return Value{kind: KindNumber, number: float64(v), integer: true}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Measured is display text backed by a raw sample, such as "95.0%" over 95.
func Measured(text string, sample float64) Value {
	return Value{kind: KindText, text: text, number: sample, sampled: true}
}

// Bytes renders n with FormatUint and keeps the raw byte count as the
// sample.
func Bytes(n uint64) Value {
	return Measured(FormatUint(n), float64(n))
}

func Percent(p float64) Value {
	return Measured(FormatPercent(p), p)
}

func List(items []string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

func Map(m map[string]string) Value {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, mapping: cp}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Float() float64 { return v.number }

// Sample returns the numeric reading behind v. Numbers are their own
// sample; text only has one when built with Measured.
func (v Value) Sample() (float64, bool) {
	switch {
	case v.kind == KindNumber:
		return v.number, true
	case v.kind == KindText && v.sampled:
		return v.number, true
	}
	return 0, false
}

func (v Value) Items() []string { return append([]string(nil), v.list...) }

// Keys returns the mapping keys in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.mapping))
	for k := range v.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.mapping)
	}
	return 1
}

// String renders the value in full, lists comma separated and mappings as
// sorted key=value pairs.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if v.integer {
			return strconv.FormatInt(int64(v.number), 10)
		}
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindList:
		return strings.Join(v.list, ", ")
	case KindMap:
		parts := make([]string, 0, len(v.mapping))
		for _, k := range v.Keys() {
			parts = append(parts, k+"="+v.mapping[k])
		}
		return strings.Join(parts, ", ")
	default:
		return v.text
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if v.integer {
			return json.Marshal(int64(v.number))
		}
		return json.Marshal(v.number)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		return json.Marshal(v.mapping)
	default:
		return json.Marshal(v.text)
	}
}
