package backdrop

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "scroll", "offset": 400, "range": 1000},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-move"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "move" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Offset != 400 || runner.steps[2].Range != 1000 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "wait" || runner.steps[3].Frames != 3 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}]}`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Move(t *testing.T) {
	h := NewHost(800, 600, Color{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "move", "x": 50, "y": 60}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(h)
	if h.Tracker.Pending() != 1 {
		t.Fatalf("expected 1 queued event, got %d", h.Tracker.Pending())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	h.Tracker.Poll()
	if h.Tracker.Latest().Pointer != (Vec2{50, 60}) {
		t.Errorf("Pointer = %v", h.Tracker.Latest().Pointer)
	}
	runner.step(h)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_ScrollDefaultRange(t *testing.T) {
	h := NewHost(800, 600, Color{})
	h.ScrollRange = 2000
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "scroll", "offset": 500}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(h)
	h.Tracker.Poll()
	if got := h.Tracker.Latest().ScrollProgress; got != 0.25 {
		t.Errorf("ScrollProgress = %v, want 0.25", got)
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	h := NewHost(800, 600, Color{})

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(h)
	if runner.Done() {
		t.Error("should not be done during wait")
	}
	// Frames 2 and 3: countdown.
	runner.step(h)
	runner.step(h)
	if runner.Done() {
		t.Error("should not be done before the screenshot step")
	}
	// Frame 4: execute screenshot step, runner finishes.
	runner.step(h)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(h.screenshotQueue) != 1 || h.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", h.screenshotQueue)
	}
}

func TestRunnerStep_Path(t *testing.T) {
	h := NewHost(800, 600, Color{})
	data := []byte(`{"steps": [{"action": "path", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	runner.step(h)
	if h.Tracker.Pending() != 4 {
		t.Fatalf("expected 4 queued events for path, got %d", h.Tracker.Pending())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	h := NewHost(800, 600, Color{})
	data := []byte(`{"steps": [
		{"action": "path", "fromX": 0, "fromY": 0, "toX": 10, "toY": 10, "frames": 2},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(h)
	runner.step(h)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	for h.Tracker.Poll() {
	}
	runner.step(h)
	if len(h.screenshotQueue) != 1 || h.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", h.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestHostAdvanceDrivesLoop(t *testing.T) {
	h := NewHost(800, 600, Color{})
	cfg := DefaultConfig()
	cfg.Density = 8
	if err := h.Start(cfg); err != nil {
		t.Fatal(err)
	}
	defer h.Stop()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "move", "x": 400, "y": 300}]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetTestRunner(runner)

	// Frame 1 injects and applies the move, frame 2 finishes the script.
	for i := 0; i < 2; i++ {
		if err := h.advance(nil); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if h.Loop.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", h.Loop.Ticks())
	}
	if !h.Tracker.Latest().HasPointer {
		t.Error("scripted move was not applied")
	}
	if f := h.Surface.Frame(); f == nil || f.Mode != ModeGridWarp {
		t.Errorf("surface frame = %+v", f)
	}
	if err := h.advance(nil); err == nil {
		t.Error("advance should end the game once the script is done")
	}
}

func TestHostLayoutResizes(t *testing.T) {
	h := NewHost(800, 600, Color{})
	w, ht := h.Layout(1024, 768)
	if w != 1024 || ht != 768 {
		t.Errorf("Layout = %dx%d", w, ht)
	}
	if h.Tracker.Latest().Viewport != (Vec2{1024, 768}) {
		t.Errorf("Viewport = %v", h.Tracker.Latest().Viewport)
	}
}

func TestHostScrollBy(t *testing.T) {
	h := NewHost(800, 600, Color{})
	h.ScrollRange = 1000
	h.scrollBy(-50)
	if h.Tracker.Latest().Seq != 0 {
		t.Error("scrolling past the top should not emit a sample")
	}
	h.scrollBy(250)
	if got := h.Tracker.Latest().ScrollProgress; got != 0.25 {
		t.Errorf("ScrollProgress = %v, want 0.25", got)
	}
	h.scrollBy(5000)
	if got := h.Tracker.Latest().ScrollProgress; got != 1 {
		t.Errorf("ScrollProgress = %v, want 1", got)
	}
}
