package testutil

import (
	"context"
	"fmt"
	"strings"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Err    error
}

// Call records a single command executed through FakeCommander.
type Call struct {
	// Dir is the working directory requested by the caller ("" for Run).
	Dir  string
	Name string
	Args []string
}

// String renders the call in the "name arg1 arg2" key format.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Argv returns the full argument vector including the command name.
func (c Call) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format.
// If no exact match is found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "uv venv", "/tmp/p/.venv/bin/pip install")
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []Call

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response

	// OnRun, when set, is invoked for every call before the response lookup.
	// Tests use it to emulate side effects such as a tool creating files.
	OnRun func(call Call)
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
	}
}

// NewOKCommander creates a FakeCommander that answers every command with empty success.
func NewOKCommander() *FakeCommander {
	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{}
	return fc
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Err:    err,
	}
}

// Run looks up the command in Responses and returns the matching response.
func (c *FakeCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return c.RunInDir(ctx, "", name, args...)
}

// RunInDir records the working directory and delegates to the lookup logic.
func (c *FakeCommander) RunInDir(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	c.Calls = append(c.Calls, call)
	if c.OnRun != nil {
		c.OnRun(call)
	}

	fullCmd := call.String()

	// Exact match first.
	if resp, ok := c.Responses[fullCmd]; ok {
		return resp.Output, resp.Err
	}

	// Try prefix matching (longest prefix wins).
	bestKey := ""
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		resp := c.Responses[bestKey]
		return resp.Output, resp.Err
	}

	// Default response.
	if c.DefaultResponse != nil {
		return c.DefaultResponse.Output, c.DefaultResponse.Err
	}

	return nil, fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)
}

// Called returns true if a command matching the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	return c.CallCount(prefix) > 0
}

// CallCount returns the number of times a command matching the given prefix was executed.
func (c *FakeCommander) CallCount(prefix string) int {
	count := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call.String(), prefix) {
			count++
		}
	}
	return count
}

// LastCall returns the most recent call, or the zero Call if none was made.
func (c *FakeCommander) LastCall() Call {
	if len(c.Calls) == 0 {
		return Call{}
	}
	return c.Calls[len(c.Calls)-1]
}
