package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(AuthenticateEvent{
		Handle:   "alice",
		ClientIP: "192.0.2.1",
		Success:  true,
	})

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "<"), "missing PRI: %q", line)
	// authn success: authpriv(10)*8 + info(6) = 86
	assert.True(t, strings.HasPrefix(line, "<86>1 "), "unexpected PRI: %q", line)
	assert.Contains(t, line, " authn ")
	assert.Contains(t, line, `user="alice"`)
	assert.Contains(t, line, "alice successfully authenticated")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLogEscapesStructuredData(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(AccessDeniedEvent{
		Handle: `ev"il]`,
		Method: "GET",
		Path:   "/api/user/list",
	})

	line := buf.String()
	assert.Contains(t, line, `user="ev\"il\]"`)
	assert.Contains(t, line, `ev"il] denied GET /api/user/list`)
}

func TestAccessDeniedAnonymous(t *testing.T) {
	e := AccessDeniedEvent{Method: "DELETE", Path: "/api/ticket/4"}
	assert.Equal(t, "anonymous denied DELETE /api/ticket/4", e.Message())
	assert.Equal(t, "-", e.StructuredData()[SDIDAuth]["user"])
}

func TestFailureSeverities(t *testing.T) {
	assert.Equal(t, SeverityWarning, AuthenticateEvent{Success: false}.Severity())
	assert.Equal(t, SeverityInfo, AuthenticateEvent{Success: true}.Severity())
	assert.Equal(t, SeverityNotice, RegistrationEvent{Success: false}.Severity())
	assert.Equal(t, SeverityWarning, AccessDeniedEvent{}.Severity())
}
