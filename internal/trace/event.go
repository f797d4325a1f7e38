package trace

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // мгновенное событие
	KindHeartbeat // сигнал «жив», см. StartHeartbeat
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команда CLI, обход директории
	ScopePass                    // фазы: lex, parse
	ScopeModule                  // один файл
	ScopeNode                    // отдельные узлы дерева
)

var scopeNames = [...]string{"unknown", "driver", "pass", "module", "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Level controls how many scopes reach a tracer.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только границы команды, для дампа после паники
	LevelPhase        // + фазы
	LevelDetail       // + файлы
	LevelDebug        // всё
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// widest scope emitted at each level
var levelCeiling = [...]Scope{0, ScopeDriver, ScopePass, ScopeModule, ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps a --trace-level value onto a Level. Case is ignored.
func ParseLevel(s string) (Level, error) {
	idx := lo.IndexOf(levelNames, strings.ToLower(s))
	if idx < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(idx), nil
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelCeiling) && scope != 0 && scope <= levelCeiling[l]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивается tracer'ом при записи
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	GID      uint64
	Name     string // "parse", "file:src/main.charj"
	Detail   string
	Dur      time.Duration // только для KindSpanEnd
	Extra    map[string]string
}
