package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a ticketd server is running$`, s.aTicketdServerIsRunning)

	// Account steps
	sc.Step(`^I register as "([^"]*)" with password "([^"]*)"$`, s.iRegisterAs)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^"([^"]*)" is an administrator$`, s.handleIsAnAdministrator)
	sc.Step(`^"([^"]*)" is a standard user$`, s.handleIsAStandardUser)
	sc.Step(`^I have no token$`, s.iHaveNoToken)

	// Request steps
	sc.Step(`^I send (GET|POST|PUT|DELETE) "([^"]*)"$`, s.iSendRequest)
	sc.Step(`^I send (GET|POST|PUT|DELETE) "([^"]*)" with body:$`, s.iSendRequestWithBody)
	sc.Step(`^I create a ticket titled "([^"]*)"$`, s.iCreateATicketTitled)

	// Fixture steps
	sc.Step(`^a priority "([^"]*)" exists$`, s.aPriorityExists)
	sc.Step(`^a category "([^"]*)" exists$`, s.aCategoryExists)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should receive a bearer token$`, s.iShouldReceiveABearerToken)
	sc.Step(`^the response body should contain "([^"]*)"$`, s.theResponseBodyShouldContain)
}

// Background steps

func (s *StepsContext) aTicketdServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

// Account steps

func (s *StepsContext) iRegisterAs(handle, secret string) error {
	body, _ := json.Marshal(map[string]string{"handle": handle, "password": secret})
	return s.doRequest("POST", "/api/auth/register", bytes.NewReader(body))
}

func (s *StepsContext) iLogInAs(handle, secret string) error {
	body, _ := json.Marshal(map[string]string{"handle": handle, "password": secret})
	if err := s.doRequest("POST", "/api/auth/login", bytes.NewReader(body)); err != nil {
		return err
	}

	// If successful, hold the token for subsequent requests
	if s.response.StatusCode == http.StatusOK {
		var login map[string]string
		if err := json.Unmarshal(s.responseBody, &login); err == nil {
			s.authToken = login["token"]
		}
	}
	return nil
}

func (s *StepsContext) handleIsAnAdministrator(handle string) error {
	return s.setRole(handle, "administrator")
}

func (s *StepsContext) handleIsAStandardUser(handle string) error {
	return s.setRole(handle, "standard")
}

func (s *StepsContext) setRole(handle, role string) error {
	tx := s.tc.DB.Exec(`UPDATE users SET role = ? WHERE handle = ?`, role, handle)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("no user with handle %q", handle)
	}
	return nil
}

func (s *StepsContext) iHaveNoToken() error {
	s.authToken = ""
	return nil
}

// Request steps

func (s *StepsContext) iSendRequest(method, path string) error {
	return s.doRequest(method, path, nil)
}

func (s *StepsContext) iSendRequestWithBody(method, path string, body *godog.DocString) error {
	return s.doRequest(method, path, strings.NewReader(body.Content))
}

func (s *StepsContext) iCreateATicketTitled(title string) error {
	// Use whichever priority the scenario seeded
	var priorityID uint
	if err := s.tc.DB.Raw(`SELECT id FROM priorities ORDER BY id LIMIT 1`).Scan(&priorityID).Error; err != nil {
		return fmt.Errorf("no priority seeded: %w", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"title":       title,
		"description": "created during an integration run",
		"priority_id": priorityID,
	})
	return s.doRequest("POST", "/api/ticket", bytes.NewReader(body))
}

func (s *StepsContext) doRequest(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// Fixture steps

func (s *StepsContext) aPriorityExists(name string) error {
	return s.tc.DB.Exec(`INSERT INTO priorities (name) VALUES (?) ON CONFLICT DO NOTHING`, name).Error
}

func (s *StepsContext) aCategoryExists(name string) error {
	return s.tc.DB.Exec(`INSERT INTO categories (name) VALUES (?) ON CONFLICT DO NOTHING`, name).Error
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iShouldReceiveABearerToken() error {
	var login map[string]string
	if err := json.Unmarshal(s.responseBody, &login); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	if login["token"] == "" {
		return fmt.Errorf("missing 'token' field in response")
	}
	if login["type"] != "Bearer" {
		return fmt.Errorf("expected token type Bearer, got %q", login["type"])
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldContain(expected string) error {
	if !strings.Contains(string(s.responseBody), expected) {
		return fmt.Errorf("expected body to contain %q, got %q", expected, string(s.responseBody))
	}
	return nil
}
