package users

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// utmp record layout on Linux (glibc, 64-bit time split into 32-bit
// tv_sec/tv_usec).
const (
	utmpRecordSize  = 384
	utmpUserProcess = 7
)

type fieldKind int

const (
	kindInt32 fieldKind = iota
	kindString
	kindBytes
)

type utmpField struct {
	Name   string
	Offset int
	Length int
	Kind   fieldKind
}

var utmpLayout = []utmpField{
	{"type", 0, 4, kindInt32},
	{"pid", 4, 4, kindInt32},
	{"line", 8, 32, kindString},
	{"id", 40, 4, kindString},
	{"user", 44, 32, kindString},
	{"host", 76, 256, kindString},
	{"exit", 332, 4, kindBytes},
	{"session", 336, 4, kindInt32},
	{"tv_sec", 340, 4, kindInt32},
	{"tv_usec", 344, 4, kindInt32},
	{"addr_v6", 348, 16, kindBytes},
	{"unused", 364, 20, kindBytes},
}

// validateLayout checks that fields are ordered, do not overlap and fit
// inside one record.
func validateLayout(layout []utmpField, size int) error {
	end := 0
	for _, f := range layout {
		if f.Length <= 0 {
			return fmt.Errorf("utmp field %s: non-positive length", f.Name)
		}
		if f.Offset < end {
			return fmt.Errorf("utmp field %s: overlaps previous field", f.Name)
		}
		if f.Kind == kindInt32 && f.Length != 4 {
			return fmt.Errorf("utmp field %s: int32 must be 4 bytes", f.Name)
		}
		end = f.Offset + f.Length
		if end > size {
			return fmt.Errorf("utmp field %s: ends at %d past record size %d", f.Name, end, size)
		}
	}
	return nil
}

func init() {
	if err := validateLayout(utmpLayout, utmpRecordSize); err != nil {
		panic(err)
	}
}

type utmpRecord struct {
	nums  map[string]int32
	texts map[string]string
}

func decodeRecord(buf []byte) utmpRecord {
	rec := utmpRecord{nums: make(map[string]int32), texts: make(map[string]string)}
	for _, f := range utmpLayout {
		raw := buf[f.Offset : f.Offset+f.Length]
		switch f.Kind {
		case kindInt32:
			rec.nums[f.Name] = int32(binary.LittleEndian.Uint32(raw))
		case kindString:
			if i := bytes.IndexByte(raw, 0); i >= 0 {
				raw = raw[:i]
			}
			rec.texts[f.Name] = strings.TrimSpace(string(raw))
		}
	}
	return rec
}

type loginRecord struct {
	User string
	Line string
	Host string
	At   time.Time
}

func (r utmpRecord) login() (loginRecord, bool) {
	if r.nums["type"] != utmpUserProcess {
		return loginRecord{}, false
	}
	user := r.texts["user"]
	if user == "" || strings.HasPrefix(user, "~") {
		return loginRecord{}, false
	}
	sec := r.nums["tv_sec"]
	if sec <= 0 {
		return loginRecord{}, false
	}
	return loginRecord{
		User: user,
		Line: r.texts["line"],
		Host: r.texts["host"],
		At:   time.Unix(int64(uint32(sec)), int64(r.nums["tv_usec"])*int64(time.Microsecond)),
	}, true
}

// readLogins scans wtmp records and keeps the latest login per user. A
// trailing partial record ends the scan.
func readLogins(r io.Reader) map[string]time.Time {
	latest := make(map[string]time.Time)
	buf := make([]byte, utmpRecordSize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			break
		}
		rec, ok := decodeRecord(buf).login()
		if !ok {
			continue
		}
		if prev, seen := latest[rec.User]; !seen || rec.At.After(prev) {
			latest[rec.User] = rec.At
		}
	}
	return latest
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
