package keymap

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func named(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestDefaultPrimaryBindings(t *testing.T) {
	m := Default()
	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{key('q'), Quit},
		{key('j'), ScrollDown},
		{key('k'), ScrollUp},
		{key('/'), SearchForward},
		{key('?'), SearchBackward},
		{key('G'), GotoBottom},
		{key('g'), GotoTop},
	}
	for _, c := range cases {
		got, ok := m.Resolve(c.ev)
		if !ok || got != c.want {
			t.Fatalf("Resolve(%v) = (%v, %v), want (%v, true)", c.ev.Rune(), got, ok, c.want)
		}
	}
}

func TestSecondaryAliasesAlwaysWork(t *testing.T) {
	m := Default()
	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{named(tcell.KeyDown), ScrollDown},
		{named(tcell.KeyUp), ScrollUp},
		{named(tcell.KeyPgDn), FullPageDown},
		{named(tcell.KeyCtrlC), Quit},
	}
	for _, c := range cases {
		got, ok := m.Resolve(c.ev)
		if !ok || got != c.want {
			t.Fatalf("Resolve(%v) = (%v, %v), want (%v, true)", c.ev.Key(), got, ok, c.want)
		}
	}
}

func TestApplyOverridesRebindsPrimaryOnly(t *testing.T) {
	m := Default()
	if err := m.ApplyOverrides(map[string]string{"quit": "ctrl+q"}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	if _, ok := m.Resolve(key('q')); ok {
		t.Fatalf("old 'q' binding should be removed after override")
	}

	ctrlQEvent := named(ctrlKeyForTest('q'))
	got, ok := m.Resolve(ctrlQEvent)
	if !ok || got != Quit {
		t.Fatalf("Resolve(ctrl+q) = (%v, %v), want (Quit, true)", got, ok)
	}

	// Secondary alias for ScrollDown (arrow Down) is untouched by config.
	if got, ok := m.Resolve(named(tcell.KeyDown)); !ok || got != ScrollDown {
		t.Fatalf("secondary alias should survive overrides, got (%v, %v)", got, ok)
	}
}

func ctrlKeyForTest(r rune) tcell.Key {
	k, _ := ctrlLetterKey(r)
	return k
}

func TestApplyOverridesUnknownActionReportsError(t *testing.T) {
	m := Default()
	if err := m.ApplyOverrides(map[string]string{"not_a_real_action": "x"}); err == nil {
		t.Fatalf("expected error for unknown action name")
	}
}

func TestApplyOverridesBadSpecReportsError(t *testing.T) {
	m := Default()
	if err := m.ApplyOverrides(map[string]string{"quit": ""}); err == nil {
		t.Fatalf("expected error for empty key spec")
	}
}

func TestParseSpecNamedKeys(t *testing.T) {
	cases := map[string]Spec{
		"space":  {Key: tcell.KeyRune, Ch: ' '},
		"Enter":  {Key: tcell.KeyEnter},
		"PgDn":   {Key: tcell.KeyPgDn},
		"esc":    {Key: tcell.KeyEscape},
		"ctrl+d": {Key: tcell.KeyCtrlD},
	}
	for in, want := range cases {
		got, err := ParseSpec(in)
		if err != nil {
			t.Fatalf("ParseSpec(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSpec(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseSpecAltAndShift(t *testing.T) {
	cases := map[string]Spec{
		"alt+j":     {Key: tcell.KeyRune, Ch: 'j', Mod: tcell.ModAlt},
		"Alt+G":     {Key: tcell.KeyRune, Ch: 'g', Mod: tcell.ModAlt},
		"alt+tab":   {Key: tcell.KeyTab, Mod: tcell.ModAlt},
		"shift+tab": {Key: tcell.KeyTab, Mod: tcell.ModShift},
		"shift+g":   {Key: tcell.KeyRune, Ch: 'g', Mod: tcell.ModShift},
	}
	for in, want := range cases {
		got, err := ParseSpec(in)
		if err != nil {
			t.Fatalf("ParseSpec(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSpec(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseSpecEmptyModifiedSpecReportsError(t *testing.T) {
	if _, err := ParseSpec("alt+"); err == nil {
		t.Fatalf("expected error for empty alt+ spec")
	}
	if _, err := ParseSpec("shift+"); err == nil {
		t.Fatalf("expected error for empty shift+ spec")
	}
}

func TestParseSpecSingleChar(t *testing.T) {
	got, err := ParseSpec("G")
	if err != nil {
		t.Fatalf("ParseSpec(G): %v", err)
	}
	want := Spec{Key: tcell.KeyRune, Ch: 'G'}
	if got != want {
		t.Fatalf("ParseSpec(G) = %+v, want %+v (case kept: 'G' is a different key from 'g')", got, want)
	}
}
