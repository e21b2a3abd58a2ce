package agent

import "fmt"

// Reply is the outcome of one Speak call: either the model's text or the
// error that prevented it.
type Reply struct {
	Speaker  string
	Provider Provider
	Text     string
	Err      error
}

// Failed reports whether the provider call failed.
func (r Reply) Failed() bool { return r.Err != nil }

// String renders the reply as a dialogue line.
func (r Reply) String() string {
	if r.Err != nil {
		return fmt.Sprintf("[Error] %s call failed: %s", r.Provider, r.Err.Error())
	}
	return r.Text
}
