package backdrop

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
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Offset float64 `json:"offset,omitempty"`
	Range  float64 `json:"range,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// knownActions lists the step actions a script may use.
var knownActions = map[string]bool{
	"screenshot": true,
	"move":       true,
	"leave":      true,
	"path":       true,
	"scroll":     true,
	"wait":       true,
}

// TestRunner sequences injected pointer and scroll events and screenshots
// across frames for automated visual testing. Attach to a Host via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Host via SetTestRunner.
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

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Host.Update before
// the tracker is polled.
func (r *TestRunner) step(h *Host) {
	if r.done {
		return
	}
	t := h.Tracker
	// Wait for pending injections to drain before advancing.
	if t.Pending() > 0 {
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
		h.Screenshot(st.Label)
	case "move":
		t.InjectPointer(st.X, st.Y)
	case "leave":
		t.InjectLeave()
	case "path":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		t.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "scroll":
		span := st.Range
		if span <= 0 {
			span = h.ScrollRange
		}
		t.InjectScroll(st.Offset, span)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && t.Pending() == 0 {
		r.done = true
	}
}
