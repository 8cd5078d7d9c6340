package exam

// LoginPrompt is shown to unauthenticated callers in place of navigation.
type LoginPrompt struct {
	Title   string
	Message string
	Actions []string
}

// Controls describes what the rendering layer may expose.
type Controls struct {
	Navigation bool
	Prompt     *LoginPrompt
}

// ControlsFor returns the navigation capability for a caller. It is a
// switch over the surface only; the session state machine does not read it.
func ControlsFor(authenticated bool) Controls {
	if authenticated {
		return Controls{Navigation: true}
	}
	return Controls{
		Prompt: &LoginPrompt{
			Title:   "Sign in to take this exam",
			Message: "Log in or create an account to unlock the exam controls.",
			Actions: []string{"login", "register"},
		},
	}
}
