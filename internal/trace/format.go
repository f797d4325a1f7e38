package trace

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению файла
	FormatText                 // одна строка на событие
	FormatNDJSON               // один JSON-объект на строку
)

var formatAliases = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"json":   FormatNDJSON,
}

// ParseFormat maps a --trace-format value onto a Format.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent encodes ev as one newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return encodeJSONLine(ev)
	}
	return encodeTextLine(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	DurUS    int64             `json:"dur_us,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func encodeJSONLine(ev *Event) []byte {
	line, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		DurUS:    ev.Dur.Microseconds(),
		Extra:    ev.Extra,
	})
	if err != nil {
		return nil // строки и map[string]string сериализуются всегда
	}
	return append(line, '\n')
}

var kindMarkers = map[Kind]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
	KindHeartbeat: "♡",
}

// encodeTextLine: "10:00:00.000   ← parse (ok) 1.20ms {tokens=12}"
func encodeTextLine(ev *Event) []byte {
	parts := []string{ev.Time.Format("15:04:05.000")}
	if ev.ParentID != 0 {
		parts[0] += "  "
	}
	if marker, ok := kindMarkers[ev.Kind]; ok {
		parts = append(parts, marker)
	}
	parts = append(parts, ev.Name)
	if ev.Detail != "" {
		parts = append(parts, "("+ev.Detail+")")
	}
	if ev.Kind == KindSpanEnd {
		parts = append(parts, fmt.Sprintf("%.2fms", float64(ev.Dur.Microseconds())/1000))
	}
	if len(ev.Extra) > 0 {
		keys := lo.Keys(ev.Extra)
		slices.Sort(keys)
		pairs := lo.Map(keys, func(k string, _ int) string { return k + "=" + ev.Extra[k] })
		parts = append(parts, "{"+strings.Join(pairs, ", ")+"}")
	}
	return []byte(strings.Join(parts, " ") + "\n")
}
