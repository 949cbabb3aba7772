package shell

import "strconv"

// Special variable triggers.
const (
	VarExitStatus = "$?"
	VarShellPid   = "$$"
)

// Variable maps a trigger token to a value computed on every lookup.
type Variable struct {
	Trigger string
	Value   func() string
}

// Variables is the fixed table of special variables.
type Variables struct {
	entries []Variable
}

// NewVariables creates the special variable table backed by state.
func NewVariables(state *State) *Variables {
	return &Variables{
		entries: []Variable{
			{
				Trigger: VarExitStatus,
				Value:   func() string { return strconv.Itoa(state.ExitStatus()) },
			},
			{
				Trigger: VarShellPid,
				Value:   func() string { return strconv.Itoa(state.Pid()) },
			},
		},
	}
}

// Resolve returns the value of token if it is exactly a variable trigger.
func (v *Variables) Resolve(token string) (string, bool) {
	for _, entry := range v.entries {
		if entry.Trigger == token {
			return entry.Value(), true
		}
	}
	return "", false
}

// Triggers lists the variable triggers in declaration order.
func (v *Variables) Triggers() []string {
	var out []string
	for _, entry := range v.entries {
		out = append(out, entry.Trigger)
	}
	return out
}
