package voice

// PendingCommand is a destructive command waiting for confirmation together
// with the transcript that produced it.
type PendingCommand struct {
	Command    Command `json:"command" yaml:"command"`
	Transcript string  `json:"transcript" yaml:"transcript"`
}

// GateState is the confirmation gate of one session. It is a value: each
// operation returns the next state instead of mutating shared state. At most
// one command is pending at a time.
type GateState struct {
	Pending *PendingCommand
}

// Intercept routes a freshly recognized command through the gate. Commands
// that require security replace any pending command and are suspended
// (second result true). Any other command discards a pending command and
// passes through.
func (g GateState) Intercept(cmd Command, transcript string) (GateState, bool) {
	if cmd.RequiresSecurity {
		return GateState{Pending: &PendingCommand{Command: cmd, Transcript: transcript}}, true
	}
	return GateState{}, false
}

// Resolve answers the confirmation prompt. On confirm the pending command is
// returned for execution; on cancel it is discarded and nil is returned. The
// gate is empty afterwards in both cases.
func (g GateState) Resolve(confirm bool) (GateState, *PendingCommand) {
	if !confirm || g.Pending == nil {
		return GateState{}, nil
	}
	return GateState{}, g.Pending
}

// HasPending reports whether a command awaits confirmation.
func (g GateState) HasPending() bool {
	return g.Pending != nil
}
