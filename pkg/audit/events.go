package audit

import "fmt"

// AuthenticateEvent records a login attempt.
type AuthenticateEvent struct {
	Handle       string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Handle)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Handle)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Handle,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result,
		},
	}
}

// RegistrationEvent records a new account registration.
type RegistrationEvent struct {
	Handle       string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegistrationEvent) MessageID() string {
	return "register"
}

func (e RegistrationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("registered new user %s", e.Handle)
	}
	msg := fmt.Sprintf("failed to register user %s", e.Handle)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegistrationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityNotice
}

func (e RegistrationEvent) Facility() int {
	return FacilityAuth
}

func (e RegistrationEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Handle,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    result,
		},
	}
}

// AccessDeniedEvent records the authorization gate rejecting a request.
// Handle is empty for anonymous callers.
type AccessDeniedEvent struct {
	Handle   string
	Method   string
	Path     string
	ClientIP string
}

func (e AccessDeniedEvent) MessageID() string {
	return "authz"
}

func (e AccessDeniedEvent) Message() string {
	caller := e.Handle
	if caller == "" {
		caller = "anonymous"
	}
	return fmt.Sprintf("%s denied %s %s", caller, e.Method, e.Path)
}

func (e AccessDeniedEvent) Severity() Severity {
	return SeverityWarning
}

func (e AccessDeniedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AccessDeniedEvent) StructuredData() map[string]map[string]string {
	user := e.Handle
	if user == "" {
		user = "-"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": user,
		},
		SDIDSubject: {
			"method": e.Method,
			"path":   e.Path,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authorize",
			"result":    "denied",
		},
	}
}
