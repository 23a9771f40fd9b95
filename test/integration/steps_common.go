package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/tidwall/gjson"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	gormstore "github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	users        map[string]*model.User
	vars         map[string]string
	// suffix keeps names unique across scenarios sharing the database
	suffix string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		users:  make(map[string]*model.User),
		vars:   make(map[string]string),
		suffix: strconv.FormatInt(time.Now().UnixNano(), 36),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a Hydra server is running$`, s.aHydraServerIsRunning)
	sc.Step(`^a user "([^"]*)" with roles? "([^"]*)"$`, s.aUserWithRoles)
	sc.Step(`^an attribute "([^"]*)"$`, s.anAttribute)
	sc.Step(`^I am "([^"]*)"$`, s.iAm)
	sc.Step(`^I am not authenticated$`, s.iAmNotAuthenticated)

	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response JSON "([^"]*)" should be "([^"]*)"$`, s.theResponseJSONShouldBe)
	sc.Step(`^the response JSON "([^"]*)" should have (\d+) items?$`, s.theResponseJSONShouldHaveItems)
	sc.Step(`^the response error code should be "([^"]*)"$`, s.theResponseErrorCodeShouldBe)
	sc.Step(`^I remember the response JSON "([^"]*)" as "([^"]*)"$`, s.iRememberTheResponseJSONAs)
}

func (s *StepsContext) aHydraServerIsRunning() error {
	return nil
}

func (s *StepsContext) aUserWithRoles(name, roles string) error {
	user := &model.User{Username: name + "-" + s.suffix, DisplayName: name}
	var codes []string
	for _, code := range regexp.MustCompile(`\s*,\s*`).Split(roles, -1) {
		if code != "" {
			codes = append(codes, code)
		}
	}
	if err := gormstore.NewUsersStore(s.tc.DB).CreateUser(user, codes); err != nil {
		return fmt.Errorf("failed to create user %s: %w", name, err)
	}
	s.users[name] = user
	s.vars[name+"_id"] = strconv.FormatInt(user.ID, 10)
	s.vars[name+"_username"] = user.Username
	return nil
}

func (s *StepsContext) anAttribute(name string) error {
	attr := &model.Attr{Name: name + "-" + s.suffix, Dimension: "dimensionless"}
	if err := s.tc.DB.Create(attr).Error; err != nil {
		return fmt.Errorf("failed to create attribute %s: %w", name, err)
	}
	s.vars[name+"_attr_id"] = strconv.FormatInt(attr.ID, 10)
	return nil
}

func (s *StepsContext) iAm(name string) error {
	user, ok := s.users[name]
	if !ok {
		return fmt.Errorf("unknown user %s", name)
	}
	tok, err := s.tc.Signer.Issue(user.ID, user.Username, time.Hour)
	if err != nil {
		return err
	}
	s.authToken = tok
	return nil
}

func (s *StepsContext) iAmNotAuthenticated() error {
	s.authToken = ""
	return nil
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// expand substitutes remembered values for {name} placeholders.
func (s *StepsContext) expand(text string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := s.vars[name]
		if !ok {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("no remembered value %q", missing)
	}
	return out, nil
}

func (s *StepsContext) iSendARequestTo(method, path string) error {
	return s.send(method, path, "")
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.send(method, path, body.Content)
}

func (s *StepsContext) send(method, path, body string) error {
	path, err := s.expand(path)
	if err != nil {
		return err
	}
	body, err = s.expand(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(context.Background(), method, s.tc.ServerURL+path, bytes.NewBufferString(body))
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) json(path string) (gjson.Result, error) {
	if !gjson.ValidBytes(s.responseBody) {
		return gjson.Result{}, fmt.Errorf("response is not JSON: %s", s.responseBody)
	}
	if path == "" || path == "." {
		return gjson.ParseBytes(s.responseBody), nil
	}
	result := gjson.GetBytes(s.responseBody, path)
	if !result.Exists() {
		return result, fmt.Errorf("%s not found in %s", path, s.responseBody)
	}
	return result, nil
}

func (s *StepsContext) theResponseJSONShouldBe(path, want string) error {
	want, err := s.expand(want)
	if err != nil {
		return err
	}
	result, err := s.json(path)
	if err != nil {
		return err
	}
	if result.String() != want {
		return fmt.Errorf("expected %s to be %q, got %q", path, want, result.String())
	}
	return nil
}

func (s *StepsContext) theResponseJSONShouldHaveItems(path string, n int) error {
	result, err := s.json(path)
	if err != nil {
		return err
	}
	if !result.IsArray() {
		return fmt.Errorf("%s is not an array: %s", path, result.Raw)
	}
	if got := len(result.Array()); got != n {
		return fmt.Errorf("expected %s to have %d items, got %d: %s", path, n, got, result.Raw)
	}
	return nil
}

func (s *StepsContext) theResponseErrorCodeShouldBe(code string) error {
	return s.theResponseJSONShouldBe("error.code", code)
}

func (s *StepsContext) iRememberTheResponseJSONAs(path, name string) error {
	result, err := s.json(path)
	if err != nil {
		return err
	}
	s.vars[name] = result.String()
	return nil
}
