package registry

import "testing"

// multiArgHandler exercises buildCommand's per-parameter ArgSpec lookup
// with an Interpreter parameter occupying the conventional first slot,
// the layout every command in this codebase follows.
type multiArgHandler struct{}

func (h *multiArgHandler) Search(interp Interpreter, pattern string, invert bool, limit int) error {
	return nil
}

func (h *multiArgHandler) DescribeOption(string) (OptionMeta, bool) { return OptionMeta{}, false }
func (h *multiArgHandler) DescribeCommand(name string) (CommandMeta, bool) {
	if name == "Search" {
		return CommandMeta{
			Args: []ArgSpec{
				{Name: "pattern"},
				{Name: "invert", Default: false},
				{Name: "limit", Default: 10},
			},
		}, true
	}
	return CommandMeta{}, false
}
func (h *multiArgHandler) IgnoreMember(string) bool { return false }
func (h *multiArgHandler) IsFilter(string) bool     { return false }

func TestBuildCommandAlignsArgSpecToItsOwnParameter(t *testing.T) {
	_, commands, _, err := Bind(&multiArgHandler{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	var cmd *Command
	for _, c := range commands {
		if c.Name == "Search" {
			cmd = c
		}
	}
	if cmd == nil {
		t.Fatal("Search command not found")
	}

	// Arguments[0] is the Interpreter slot; the formal parameters follow
	// in declaration order and must line up with their own ArgSpec, not
	// the next one over.
	if len(cmd.Arguments) != 4 {
		t.Fatalf("Arguments len = %d, want 4 (full: %#v)", len(cmd.Arguments), cmd.Arguments)
	}

	pattern := cmd.Arguments[1]
	if pattern.Name != "pattern" || pattern.Position != 0 {
		t.Fatalf("pattern arg = %#v", pattern)
	}
	if !pattern.Required {
		t.Fatal("pattern has no Default and should be required")
	}

	invert := cmd.Arguments[2]
	if invert.Name != "invert" || invert.Position != 1 {
		t.Fatalf("invert arg = %#v", invert)
	}
	if invert.Required {
		t.Fatal("invert has Default: false and should not be required")
	}

	limit := cmd.Arguments[3]
	if limit.Name != "limit" || limit.Position != 2 {
		t.Fatalf("limit arg = %#v, want name %q position 2", limit, "limit")
	}
	if limit.Required || limit.Default != 10 {
		t.Fatalf("limit = %#v, want Default 10 and not Required", limit)
	}
}

// captureAllHandler mirrors the Set/Echo shape: a single []string
// parameter described with CapturesAll, which previously landed past
// the end of a one-entry Args slice and lost its CapturesAll marker.
type captureAllHandler struct{}

func (h *captureAllHandler) Join(interp Interpreter, words []string) error { return nil }

func (h *captureAllHandler) DescribeOption(string) (OptionMeta, bool) { return OptionMeta{}, false }
func (h *captureAllHandler) DescribeCommand(name string) (CommandMeta, bool) {
	if name == "Join" {
		return CommandMeta{Args: []ArgSpec{{CapturesAll: true}}}, true
	}
	return CommandMeta{}, false
}
func (h *captureAllHandler) IgnoreMember(string) bool { return false }
func (h *captureAllHandler) IsFilter(string) bool     { return false }

func TestBuildCommandKeepsCapturesAllOnSoleArgument(t *testing.T) {
	_, commands, _, err := Bind(&captureAllHandler{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	cmd := commands[0]
	if len(cmd.Arguments) != 2 {
		t.Fatalf("Arguments len = %d, want 2", len(cmd.Arguments))
	}
	words := cmd.Arguments[1]
	if !words.CapturesAll {
		t.Fatal("expected the sole formal parameter to keep its CapturesAll marker")
	}
	if words.Required {
		t.Fatal("a CapturesAll argument is never required")
	}
}

func TestBuildCommandFallsBackToPositionalNameWhenUndescribed(t *testing.T) {
	h := &multiArgHandlerNoMeta{}
	_, commands, _, err := Bind(h)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	cmd := commands[0]
	// interpreter + one plain parameter, no Describer entry at all.
	if len(cmd.Arguments) != 2 {
		t.Fatalf("Arguments len = %d, want 2", len(cmd.Arguments))
	}
	arg := cmd.Arguments[1]
	if arg.Name != "arg0" || !arg.Required {
		t.Fatalf("arg = %#v, want fallback name arg0 and Required", arg)
	}
}

type multiArgHandlerNoMeta struct{}

func (h *multiArgHandlerNoMeta) Echo(interp Interpreter, text string) error { return nil }
