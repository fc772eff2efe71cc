package screen

import (
	"strings"
	"testing"
)

func timeCtor(cfg TimeConfig) Ctor {
	return func(m *Manager, parent Scene) Scene {
		return NewTime(m, parent, cfg)
	}
}

func newTimeUnderMenu(t *testing.T, cfg TimeConfig) (*Manager, *Time, *fakeDisplay) {
	t.Helper()
	m, d := newTestManager(stubCtor("home"))
	m.SwitchToNew(timeCtor(cfg))
	s, ok := m.Current().(*Time)
	if !ok {
		t.Fatalf("current scene is %T, want *Time", m.Current())
	}
	return m, s, d
}

func loadUnset() (int, int, bool) { return 0, 0, false }

func TestTime_PrepopulatesFromStoredTime(t *testing.T) {
	_, s, _ := newTimeUnderMenu(t, TimeConfig{
		Title: "t",
		Load:  func() (int, int, bool) { return 6, 30, true },
	})
	if s.digits != [4]int{0, 6, 3, 0} {
		t.Errorf("digits = %v, want [0 6 3 0]", s.digits)
	}
}

func TestTime_UnsetPrepopulatesDashes(t *testing.T) {
	_, s, _ := newTimeUnderMenu(t, TimeConfig{Title: "t", Load: loadUnset})
	for i, d := range s.digits {
		if d != digitUnset {
			t.Errorf("digit %d = %d, want unset", i, d)
		}
	}
}

func TestTime_HourTensCyclesThroughUnset(t *testing.T) {
	m, s, _ := newTimeUnderMenu(t, TimeConfig{Title: "t", Load: loadUnset})

	// unset -> 0 -> 1 -> 2 -> unset
	for _, want := range []int{0, 1, 2, digitUnset, 0} {
		m.Dispatch(Event{Key: KeyA})
		if s.digits[0] != want {
			t.Fatalf("digit = %d, want %d", s.digits[0], want)
		}
	}
}

func TestTime_OtherDigitsCycleThroughUnset(t *testing.T) {
	m, s, _ := newTimeUnderMenu(t, TimeConfig{Title: "t", Load: loadUnset})

	// unset -> 0 .. 9 -> unset
	want := append([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, digitUnset)
	for _, w := range want {
		m.Dispatch(Event{Key: KeyD})
		if s.digits[3] != w {
			t.Fatalf("digit = %d, want %d", s.digits[3], w)
		}
	}
}

func TestTime_ConfirmSavesDecodedTime(t *testing.T) {
	var gotH, gotM int
	var gotSet bool
	m, s, _ := newTimeUnderMenu(t, TimeConfig{
		Title: "t",
		Load:  loadUnset,
		Save: func(h, min int, set bool) error {
			gotH, gotM, gotSet = h, min, set
			return nil
		},
	})

	// Enter 06:30.
	press := func(key Key, n int) {
		for i := 0; i < n; i++ {
			m.Dispatch(Event{Key: key})
		}
	}
	press(KeyA, 1) // 0
	press(KeyB, 7) // 6
	press(KeyC, 4) // 3
	press(KeyD, 1) // 0

	if s.digits != [4]int{0, 6, 3, 0} {
		t.Fatalf("digits = %v before confirm", s.digits)
	}
	m.Dispatch(Event{Key: KeyOK})

	if !gotSet || gotH != 6 || gotM != 30 {
		t.Errorf("saved %02d:%02d set=%v, want 06:30 set=true", gotH, gotM, gotSet)
	}
	if m.Current().Title() != "home" {
		t.Errorf("confirm did not pop, still on %q", m.Current().Title())
	}
}

func TestTime_AllUnsetSavesDisabled(t *testing.T) {
	saved := false
	var gotSet bool
	m, _, _ := newTimeUnderMenu(t, TimeConfig{
		Title: "t",
		Load:  func() (int, int, bool) { return 6, 30, true },
		Save: func(h, min int, set bool) error {
			saved, gotSet = true, set
			return nil
		},
	})

	// Wipe every digit back to unset: 0 needs 3 presses (0->..->unset
	// on the tens of hours), the rest vary by starting value.
	press := func(key Key, n int) {
		for i := 0; i < n; i++ {
			m.Dispatch(Event{Key: key})
		}
	}
	press(KeyA, 3)  // 0 -> 1 -> 2 -> unset
	press(KeyB, 4)  // 6 -> 7 -> 8 -> 9 -> unset
	press(KeyC, 7)  // 3 -> ... -> 9 -> unset
	press(KeyD, 10) // 0 -> ... -> 9 -> unset
	m.Dispatch(Event{Key: KeyOK})

	if !saved {
		t.Fatal("Save not reached")
	}
	if gotSet {
		t.Error("all-unset time must save as disabled")
	}
}

func TestTime_InvalidTimesKeepSceneOpen(t *testing.T) {
	tests := []struct {
		name   string
		digits [4]int
	}{
		{"partially unset", [4]int{0, 6, digitUnset, 0}},
		{"hour out of range", [4]int{2, 4, 0, 0}},
		{"minute out of range", [4]int{0, 6, 6, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			saves := 0
			m, s, _ := newTimeUnderMenu(t, TimeConfig{
				Title: "t",
				Load:  loadUnset,
				Save:  func(int, int, bool) error { saves++; return nil },
			})
			s.digits = tc.digits
			m.Dispatch(Event{Key: KeyOK})
			if saves != 0 {
				t.Error("invalid time reached Save")
			}
			if m.Current() != s {
				t.Error("scene closed despite invalid time")
			}
		})
	}
}

func TestTime_RendersColonAndDashes(t *testing.T) {
	_, _, d := newTimeUnderMenu(t, TimeConfig{Title: "Open time", Load: loadUnset})
	lines := d.last(t)
	row := lines[valueRow]
	if row[colonCol] != ':' {
		t.Errorf("missing colon: %q", row)
	}
	for i := 0; i < 4; i++ {
		if got := row[digit0Col+i*digitStep]; got != '-' {
			t.Errorf("unset digit %d renders %c, want -", i, got)
		}
	}
	if !strings.HasPrefix(lines[0], "Open time") {
		t.Errorf("title row = %q", lines[0])
	}
}
