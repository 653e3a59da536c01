package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/catalog"
	"github.com/tripdesk/tripdesk/pkg/model"
	gormstore "github.com/tripdesk/tripdesk/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	vars         map[string]string
	lastOrder    *placedOrder
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:   tc,
		vars: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a tripdesk server is running$`, s.aTripdeskServerIsRunning)
	sc.Step(`^the catalog contains:$`, s.theCatalogContains)

	// Authentication steps
	sc.Step(`^I sign up as "([^"]*)" with password "([^"]*)"$`, s.iSignUpAs)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^an admin "([^"]*)" exists with password "([^"]*)"$`, s.anAdminExists)
	sc.Step(`^I am logged in as admin "([^"]*)"$`, s.iAmLoggedInAsAdmin)
	sc.Step(`^I am a customer "([^"]*)"$`, s.iAmACustomer)
	sc.Step(`^I log out$`, s.iLogOut)

	// Request steps
	sc.Step(`^I send a (GET|POST|PUT|PATCH|DELETE) request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a (POST|PUT|PATCH) request to "([^"]*)" with:$`, s.iSendARequestWith)
	sc.Step(`^I remember the JSON response at "([^"]*)" as "([^"]*)"$`, s.iRememberTheJSONResponseAt)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the JSON response at "([^"]*)" should be "([^"]*)"$`, s.theJSONResponseAtShouldBe)
	sc.Step(`^the JSON response at "([^"]*)" should have (\d+) items?$`, s.theJSONResponseAtShouldHaveItems)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, s.theResponseHeaderShouldBe)

	s.registerSessionSteps(sc)
	s.registerBookingSteps(sc)
}

// Background steps

func (s *StepsContext) aTripdeskServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) theCatalogContains(doc *godog.DocString) error {
	loader := catalog.NewLoader(s.tc.DB).WithCurrency("INR")
	_, err := loader.LoadFromReader(context.Background(), strings.NewReader(doc.Content))
	return err
}

// Authentication steps

func (s *StepsContext) iSignUpAs(email, pw string) error {
	name := strings.SplitN(email, "@", 2)[0]
	if err := s.send("POST", "/auth/signup", map[string]string{"email": email, "password": pw, "name": name}); err != nil {
		return err
	}
	return s.captureToken()
}

func (s *StepsContext) iLogInAs(email, pw string) error {
	if err := s.send("POST", "/auth/login", map[string]string{"email": email, "password": pw}); err != nil {
		return err
	}
	return s.captureToken()
}

func (s *StepsContext) anAdminExists(email, pw string) error {
	hash, err := password.HashPassword(pw, bcrypt.MinCost)
	if err != nil {
		return err
	}
	return gormstore.NewUsersStore(s.tc.DB).CreateUser(context.Background(), &model.User{
		Email:        password.NormalizeEmail(email),
		Name:         "Ops",
		PasswordHash: &hash,
		Role:         model.UserRoleAdmin,
	})
}

func (s *StepsContext) iAmLoggedInAsAdmin(email string) error {
	const pw = "admin-password-1"
	if err := s.anAdminExists(email, pw); err != nil {
		return err
	}
	if err := s.iLogInAs(email, pw); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *StepsContext) iAmACustomer(email string) error {
	if err := s.iSignUpAs(email, "customer-password-1"); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusCreated)
}

func (s *StepsContext) iLogOut() error {
	s.authToken = ""
	return nil
}

func (s *StepsContext) captureToken() error {
	if s.response.StatusCode >= 300 {
		return nil
	}
	token, err := s.jsonAt("token")
	if err != nil {
		return err
	}
	s.authToken = fmt.Sprint(token)
	return nil
}

// Request steps

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.send(method, path, nil)
}

func (s *StepsContext) iSendARequestWith(method, path string, body *godog.DocString) error {
	return s.send(method, path, json.RawMessage(s.expand(body.Content)))
}

func (s *StepsContext) iRememberTheJSONResponseAt(path, name string) error {
	v, err := s.jsonAt(path)
	if err != nil {
		return err
	}
	s.vars[name] = fmt.Sprint(v)
	return nil
}

// send issues a request against the server; body is encoded as JSON unless nil
func (s *StepsContext) send(method, path string, body any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+s.expand(path), r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	return s.do(req)
}

func (s *StepsContext) do(req *http.Request) error {
	var err error
	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// expand replaces {name} with remembered values
func (s *StepsContext) expand(in string) string {
	for name, value := range s.vars {
		in = strings.ReplaceAll(in, "{"+name+"}", value)
	}
	return in
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theJSONResponseAtShouldBe(path, expected string) error {
	v, err := s.jsonAt(path)
	if err != nil {
		return err
	}
	if actual := fmt.Sprint(v); actual != s.expand(expected) {
		return fmt.Errorf("expected %s to be %q, got %q", path, s.expand(expected), actual)
	}
	return nil
}

func (s *StepsContext) theJSONResponseAtShouldHaveItems(path string, n int) error {
	v, err := s.jsonAt(path)
	if err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%s is not an array: %v", path, v)
	}
	if len(items) != n {
		return fmt.Errorf("expected %d items at %s, got %d", n, path, len(items))
	}
	return nil
}

func (s *StepsContext) theResponseHeaderShouldBe(name, expected string) error {
	if actual := s.response.Header.Get(name); actual != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, actual)
	}
	return nil
}

// jsonAt walks a dotted path such as "items.0.slug" through the response body
func (s *StepsContext) jsonAt(path string) (any, error) {
	var v any
	if err := json.Unmarshal(s.responseBody, &v); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w: %s", err, s.responseBody)
	}
	for _, part := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("%s not found in response: %s", path, s.responseBody)
			}
			v = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("bad index %q in %s", part, path)
			}
			v = node[i]
		default:
			return nil, fmt.Errorf("%s not found in response: %s", path, s.responseBody)
		}
	}
	return v, nil
}
