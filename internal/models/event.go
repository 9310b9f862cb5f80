package models

// Event is one user interaction forwarded by the chat backend. Everything the
// core needs travels on it: the acting identity, button parameters, dialog
// form inputs and the state snapshot embedded in the card that was clicked.
type Event struct {
	Action     string               `json:"action"`
	Actor      Voter                `json:"actor"`
	Parameters map[string]string    `json:"parameters"`
	FormInputs map[string]FormInput `json:"formInputs"`
	// State 卡片内嵌状态快照, absent when the card carried none
	State      string `json:"state"`
	MessageRef string `json:"message"`
	SpaceRef   string `json:"space"`
	ThreadRef  string `json:"thread"`
}

// FormInput mirrors the chat backend's dialog input nesting.
type FormInput struct {
	StringInputs StringInputs `json:"stringInputs"`
}

type StringInputs struct {
	Value []string `json:"value"`
}

// Param returns a button parameter, "" when absent.
func (e *Event) Param(key string) string {
	return e.Parameters[key]
}

// Input returns the first submitted value of a dialog field, "" when absent.
func (e *Event) Input(name string) string {
	in, ok := e.FormInputs[name]
	if !ok || len(in.StringInputs.Value) == 0 {
		return ""
	}
	return in.StringInputs.Value[0]
}
