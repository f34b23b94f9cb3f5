package audit

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// SDID constants for structured data IDs (RFC5424).
const (
	SDIDAuth    = "auth@ticketd"
	SDIDSubject = "subject@ticketd"
	SDIDAction  = "action@ticketd"
	SDIDClient  = "client@ticketd"
)

// Syslog facility constants
const (
	FacilityAuth     = 4  // LOG_AUTH - security/authorization messages
	FacilityAuthPriv = 10 // LOG_AUTHPRIV - security/authorization messages (private)
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarning                   // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger handles audit logging in RFC5424 syslog format
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	appName  string
	pid      int
}

// NewLogger creates a new audit logger
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   os.Stdout,
		hostname: hostname,
		appName:  "ticketd",
		pid:      os.Getpid(),
	}
}

// SetWriter sets the output writer for the logger
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// Log writes an audit event in RFC5424 syslog format
// Format: <PRI>VERSION TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Log(event Event) {
	pri := event.Facility()*8 + int(event.Severity())

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	sd := formatStructuredData(event.StructuredData())
	if sd == "" {
		sd = "-"
	}

	hostname := l.hostname
	if hostname == "" {
		hostname = "-"
	}

	logLine := fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		pri,
		timestamp,
		hostname,
		l.appName,
		l.pid,
		event.MessageID(),
		sd,
		event.Message(),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write([]byte(logLine))
}

// formatStructuredData formats the structured data according to RFC5424
// Format: [sdid param1="value1" param2="value2"][sdid2 ...]
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return ""
	}

	var parts []string
	for sdid, params := range sd {
		var paramParts []string
		paramParts = append(paramParts, sdid)
		for key, value := range params {
			paramParts = append(paramParts, fmt.Sprintf("%s=%s", key, escapeSDValue(value)))
		}
		parts = append(parts, "["+strings.Join(paramParts, " ")+"]")
	}
	return strings.Join(parts, "")
}

// escapeSDValue escapes special characters in structured data values per RFC5424
func escapeSDValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "]", "\\]")
	return "\"" + value + "\""
}

// DefaultLogger is the process-wide audit logger.
var DefaultLogger = NewLogger()

var (
	auditEnabled     = true
	auditEnabledOnce sync.Once
)

// IsEnabled returns whether audit logging is enabled. Set
// TICKETD_AUDIT_ENABLED=false to silence the audit stream.
func IsEnabled() bool {
	auditEnabledOnce.Do(func() {
		if env := os.Getenv("TICKETD_AUDIT_ENABLED"); env != "" {
			auditEnabled = env != "false" && env != "0" && env != "no"
		}
	})
	return auditEnabled
}

// SetEnabled allows programmatic control of audit logging.
func SetEnabled(enabled bool) {
	auditEnabled = enabled
}

// Log writes an event to the default logger (if audit is enabled)
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)
}
