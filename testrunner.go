package tilegrid

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"click":      true,
	"rightclick": true,
	"reset":      true,
	"copy":       true,
	"wait":       true,
	"screenshot": true,
}

// TestRunner sequences injected input and screenshots across frames for
// scripted visual checks. Attach to a Game via SetTestRunner.
//
//	{"steps": [
//	  {"action": "click", "x": 30, "y": 40},
//	  {"action": "rightclick", "x": 30, "y": 40},
//	  {"action": "wait", "frames": 5},
//	  {"action": "screenshot", "label": "mutated"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. Its step method runs at
// the start of every Update.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 || len(g.injectKeys) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y, MouseButtonLeft)
	case "rightclick":
		g.InjectClick(st.X, st.Y, MouseButtonRight)
	case "reset":
		g.InjectKey(g.resetKey)
	case "copy":
		g.InjectKey(g.copyKey)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 && len(g.injectKeys) == 0 {
		r.done = true
	}
}
