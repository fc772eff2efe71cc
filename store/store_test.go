package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func testStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return Open(fs, "state.json"), fs
}

// ---------- Open ----------

func TestOpen_MissingFile(t *testing.T) {
	s, _ := testStore(t)
	if got := len(s.IDs()); got != 0 {
		t.Errorf("expected empty store, got %d entries", got)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "state.json", []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(fs, "state.json")
	if got := len(s.IDs()); got != 0 {
		t.Errorf("expected defaults after corrupt file, got %d entries", got)
	}

	e := s.Get("ao")
	if e.Speed != 1.0 || e.Duration != 1.0 || !e.Disabled() {
		t.Errorf("expected default entry, got %+v", e)
	}
}

func TestOpen_SanitizesOutOfRangeFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := `{"ao":{"h":99,"m":30,"p":7.5,"d":-1}}`
	if err := afero.WriteFile(fs, "state.json", []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(fs, "state.json")
	e := s.Get("ao")
	if e.Hour != nil {
		t.Errorf("expected out-of-range hour dropped, got %d", *e.Hour)
	}
	if e.Minute == nil || *e.Minute != 30 {
		t.Errorf("expected minute kept, got %+v", e.Minute)
	}
	if e.Speed != 1.0 {
		t.Errorf("expected speed reset to default, got %f", e.Speed)
	}
	if e.Duration != 1.0 {
		t.Errorf("expected duration reset to default, got %f", e.Duration)
	}
}

// A hand-edited duration beyond what the four-digit entry screen can
// show is clamped on load, so a reopened value never reads smaller
// than what the store holds.
func TestOpen_ClampsOversizedDuration(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := `{"ao":{"d":5000,"p":1}}`
	if err := afero.WriteFile(fs, "state.json", []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(fs, "state.json")
	if got := s.Get("ao").Duration; got != 999.9 {
		t.Errorf("duration = %f, want clamp to 999.9", got)
	}
}

// ---------- Update / persistence ----------

func TestUpdate_PersistsSynchronously(t *testing.T) {
	s, fs := testStore(t)

	err := s.Update("ao", func(e *Entry) {
		h, m := 6, 30
		e.Hour, e.Minute = &h, &m
		e.Speed = 0.8
		e.Duration = 5.0
	})
	if err != nil {
		t.Fatal(err)
	}

	reloaded := Open(fs, "state.json")
	e := reloaded.Get("ao")
	if e.Hour == nil || *e.Hour != 6 || e.Minute == nil || *e.Minute != 30 {
		t.Errorf("time not persisted: %+v", e)
	}
	if e.Speed != 0.8 || e.Duration != 5.0 {
		t.Errorf("speed/duration not persisted: %+v", e)
	}
}

func TestNextFire_NeverPersisted(t *testing.T) {
	s, fs := testStore(t)

	if err := s.Update("ao", func(e *Entry) { e.NextFire = 12345 }); err != nil {
		t.Fatal(err)
	}
	s.SetNextFire("ao", 99999)
	if err := s.Update("ao", func(e *Entry) {}); err != nil {
		t.Fatal(err)
	}

	raw, err := afero.ReadFile(fs, "state.json")
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["ao"]["t"]; ok {
		t.Error("derived timestamp leaked into persisted state")
	}

	reloaded := Open(fs, "state.json")
	if got := reloaded.Get("ao").NextFire; got != 0 {
		t.Errorf("expected NextFire recomputed from zero after reload, got %d", got)
	}
}

func TestSetNextFire_DoesNotCreateEntries(t *testing.T) {
	s, _ := testStore(t)
	s.SetNextFire("ghost", 42)
	if got := len(s.IDs()); got != 0 {
		t.Errorf("SetNextFire created an entry: %v", s.IDs())
	}
}

func TestAdvanceNextFire(t *testing.T) {
	s, _ := testStore(t)
	err := s.Update("ao", func(e *Entry) {
		h, m := 6, 30
		e.Hour, e.Minute = &h, &m
	})
	if err != nil {
		t.Fatal(err)
	}
	s.SetNextFire("ao", 1000)

	seen := s.Get("ao")

	t.Run("matching copy advances", func(t *testing.T) {
		if !s.AdvanceNextFire("ao", seen, 2000) {
			t.Fatal("advance refused although nothing changed")
		}
		if got := s.Get("ao").NextFire; got != 2000 {
			t.Errorf("NextFire = %d, want 2000", got)
		}
		s.SetNextFire("ao", 1000)
	})

	t.Run("stale timestamp refused", func(t *testing.T) {
		s.SetNextFire("ao", 0) // concurrent reset
		if s.AdvanceNextFire("ao", seen, 2000) {
			t.Error("advance overwrote a reset timestamp")
		}
		if got := s.Get("ao").NextFire; got != 0 {
			t.Errorf("NextFire = %d, want the reset to stand", got)
		}
		s.SetNextFire("ao", 1000)
	})

	t.Run("edited time refused", func(t *testing.T) {
		err := s.Update("ao", func(e *Entry) {
			h, m := 20, 0
			e.Hour, e.Minute = &h, &m
			e.NextFire = 1000 // same timestamp, new time of day
		})
		if err != nil {
			t.Fatal(err)
		}
		if s.AdvanceNextFire("ao", seen, 2000) {
			t.Error("advance ignored a concurrent time edit")
		}
	})

	t.Run("unknown identity refused", func(t *testing.T) {
		if s.AdvanceNextFire("ghost", Entry{}, 2000) {
			t.Error("advance wrote to a missing entry")
		}
	})
}

// ---------- one-shots ----------

func TestArmOneShot_CopiesSpeedAndDuration(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Update("ao", func(e *Entry) {
		e.Speed = 0.5
		e.Duration = 3.0
	}); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.ArmOneShot("ao", now); err != nil {
		t.Fatal(err)
	}

	e := s.Get(OneShotID("ao"))
	if !e.OneShot {
		t.Error("expected one-shot flag")
	}
	if e.Speed != 0.5 || e.Duration != 3.0 {
		t.Errorf("expected speed/duration copied from recurring entry, got %+v", e)
	}
	if e.NextFire != now.Unix() {
		t.Errorf("expected NextFire %d, got %d", now.Unix(), e.NextFire)
	}
}

func TestArmOneShot_ReplacesPending(t *testing.T) {
	s, _ := testStore(t)
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	if err := s.ArmOneShot("ao", t1); err != nil {
		t.Fatal(err)
	}
	if err := s.ArmOneShot("ao", t2); err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, id := range s.IDs() {
		if s.Get(id).OneShot {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one pending one-shot, got %d", count)
	}
	if got := s.Get(OneShotID("ao")).NextFire; got != t2.Unix() {
		t.Errorf("expected replacement timestamp %d, got %d", t2.Unix(), got)
	}
}

// ---------- clock change ----------

func TestClearNextFires_SparesOneShots(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Update("ao", func(e *Entry) {}); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.ArmOneShot("ao", now); err != nil {
		t.Fatal(err)
	}
	s.SetNextFire("ao", 5000)

	s.ClearNextFires()

	if got := s.Get("ao").NextFire; got != 0 {
		t.Errorf("expected recurring timestamp cleared, got %d", got)
	}
	if got := s.Get(OneShotID("ao")).NextFire; got != now.Unix() {
		t.Errorf("expected pending one-shot untouched, got %d", got)
	}
}

// ---------- helpers ----------

func TestSpeedPercent(t *testing.T) {
	cases := []struct {
		speed float64
		want  int
	}{
		{0.0, 0},
		{0.8, 80},
		{1.0, 100},
		{1.5, 100},
		{-0.5, 0},
		{0.123, 12},
	}
	for _, c := range cases {
		e := Entry{Speed: c.speed}
		if got := e.SpeedPercent(); got != c.want {
			t.Errorf("SpeedPercent(%f) = %d, want %d", c.speed, got, c.want)
		}
	}
}

func TestBaseID(t *testing.T) {
	if got := BaseID(OneShotID("ao")); got != "ao" {
		t.Errorf("BaseID round trip = %q", got)
	}
	if got := BaseID("ao"); got != "ao" {
		t.Errorf("BaseID of plain id = %q", got)
	}
}
