package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Structured data IDs (RFC5424). Hydra has no Private Enterprise Number
// of its own and uses the documentation PEN.
const (
	HydraPEN    = 32473
	SDIDAuth    = "auth@32473"
	SDIDSubject = "subject@32473"
	SDIDAction  = "action@32473"
	SDIDClient  = "client@32473"
	SDIDData    = "data@32473"
)

// Syslog facilities used by hydra events.
const (
	FacilityAuth     = 4
	FacilityAuthPriv = 10
)

// AppName is the RFC5424 APP-NAME of hydra audit messages.
const AppName = "hydra"

// Severity is an RFC5424 severity level.
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Event is anything that can be written to the audit trail.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// record is an event stamped with the origin fields shared by the syslog
// line and the audit_events row.
type record struct {
	Event
	at       time.Time
	hostname string
	pid      int
}

func stamp(e Event, hostname string, pid int) record {
	return record{Event: e, at: time.Now().UTC(), hostname: hostname, pid: pid}
}

func (r record) pri() int {
	return r.Facility()*8 + int(r.Severity())
}

// syslog renders <PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG.
func (r record) syslog() string {
	hostname := r.hostname
	if hostname == "" {
		hostname = "-"
	}
	sd := formatStructuredData(r.StructuredData())
	if sd == "" {
		sd = "-"
	}
	return fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		r.pri(),
		r.at.Format("2006-01-02T15:04:05.000Z"),
		hostname,
		AppName,
		r.pid,
		r.MessageID(),
		sd,
		r.Message(),
	)
}

// Logger writes events as RFC5424 lines.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	pid      int
}

func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	return &Logger{writer: os.Stdout, hostname: hostname, pid: os.Getpid()}
}

func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

func (l *Logger) Log(event Event) {
	line := stamp(event, l.hostname, l.pid).syslog()

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

// formatStructuredData renders [sdid k="v" ...] elements with elements and
// params in sorted order.
func formatStructuredData(sd map[string]map[string]string) string {
	var b strings.Builder
	for _, sdid := range sortedKeys(sd) {
		b.WriteString("[")
		b.WriteString(sdid)
		params := sd[sdid]
		for _, key := range sortedKeys(params) {
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(escapeSDValue(params[key]))
		}
		b.WriteString("]")
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var sdEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `]`, `\]`)

// escapeSDValue quotes a PARAM-VALUE (RFC5424 section 6.3.3).
func escapeSDValue(value string) string {
	return `"` + sdEscaper.Replace(value) + `"`
}

// DefaultLogger is the logger used by Log.
var DefaultLogger = NewLogger()

// DefaultStore persists events logged through Log. It is opened on first
// use and stays nil unless HYDRA_AUDIT_DATABASE_URL is set.
var DefaultStore *Store

var (
	enabledMu   sync.RWMutex
	enabled     = true
	enabledOnce sync.Once
	storeOnce   sync.Once
)

// IsEnabled reports whether Log writes anything. HYDRA_AUDIT_ENABLED set
// to false, 0 or no turns auditing off.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		switch strings.ToLower(os.Getenv("HYDRA_AUDIT_ENABLED")) {
		case "false", "0", "no":
			SetEnabled(false)
		}
	})
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

func SetEnabled(on bool) {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	enabled = on
}

// Log writes event to DefaultLogger and, when configured, DefaultStore.
// Store failures are reported on stderr and never returned to the caller.
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeOnce.Do(func() {
		var err error
		if DefaultStore, err = NewStore(); err != nil {
			fmt.Fprintf(os.Stderr, "audit: open audit database: %v\n", err)
		}
	})
	if DefaultStore == nil {
		return
	}
	if err := DefaultStore.Save(event); err != nil {
		fmt.Fprintf(os.Stderr, "audit: save %s event: %v\n", event.MessageID(), err)
	}
}
