package question

import "testing"

func TestTrackerDepthPerBody(t *testing.T) {
	var tr Tracker

	if tr.Suppressed() {
		t.Fatal("fresh tracker must not be suppressed")
	}

	tr.EnterBody()
	if tr.Suppressed() {
		t.Fatal("body entry must start unsuppressed")
	}

	tr.EnterRegion()
	tr.EnterRegion()
	if !tr.Suppressed() {
		t.Fatal("nested regions must suppress")
	}
	tr.ExitRegion()
	if !tr.Suppressed() {
		t.Fatal("one region still open, must stay suppressed")
	}
	tr.ExitRegion()
	if tr.Suppressed() {
		t.Fatal("all regions closed, must resume")
	}
	tr.ExitBody()
}

func TestTrackerInnerBodyShadowsOuter(t *testing.T) {
	var tr Tracker
	tr.EnterBody()
	tr.EnterRegion()

	// A nested body (closure inside a try block) gets its own counter.
	tr.EnterBody()
	if tr.Suppressed() {
		t.Fatal("inner body must not inherit outer suppression")
	}
	tr.ExitBody()

	if !tr.Suppressed() {
		t.Fatal("outer body suppression must survive the inner body")
	}
	tr.ExitRegion()
	tr.ExitBody()
}

func TestTrackerPanicsOnBrokenContract(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Tracker)
	}{
		{"exit body without enter", func(tr *Tracker) { tr.ExitBody() }},
		{"exit region without enter", func(tr *Tracker) {
			tr.EnterBody()
			tr.ExitRegion()
		}},
		{"region outside body", func(tr *Tracker) { tr.EnterRegion() }},
		{"exit body with open region", func(tr *Tracker) {
			tr.EnterBody()
			tr.EnterRegion()
			tr.ExitBody()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			var tr Tracker
			tt.run(&tr)
		})
	}
}
