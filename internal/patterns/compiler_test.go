package patterns

import "testing"

func TestCompilerExpansion(t *testing.T) {
	c := NewCompiler([]Format{
		{
			Name:    "leg",
			Pattern: `(?P<flight>{FLIGHT}){WS}(?P<origin>{AIRPORT}){WS}(?P<destination>{AIRPORT})`,
		},
	}, nil)
	if err := c.Compile(); err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}

	m := c.Parse("DL1234 LAX JFK")
	if m == nil {
		t.Fatal("no match")
	}
	if m.FormatName != "leg" {
		t.Errorf("format = %s, want leg", m.FormatName)
	}
	if got := m.GetCapture("flight", ""); got != "DL1234" {
		t.Errorf("flight = %q, want DL1234", got)
	}
	if got := m.GetCapture("origin", ""); got != "LAX" {
		t.Errorf("origin = %q, want LAX", got)
	}
	if got := m.GetCapture("destination", ""); got != "JFK" {
		t.Errorf("destination = %q, want JFK", got)
	}
}

func TestCompilerLocalOverride(t *testing.T) {
	c := NewCompiler([]Format{
		{Name: "custom", Pattern: `GATE (?P<gate>{GATE})`},
	}, map[string]string{
		"GATE": `[X-Z]\d`,
	})
	if err := c.Compile(); err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}

	if m := c.Parse("GATE B12"); m != nil {
		t.Errorf("override ignored: matched %v", m.Captures)
	}
	m := c.Parse("GATE X4")
	if m == nil || m.GetCapture("gate", "") != "X4" {
		t.Errorf("local pattern did not match: %v", m)
	}
}

func TestCompilerFormatOrder(t *testing.T) {
	c := NewCompiler([]Format{
		{Name: "specific", Pattern: `SEAT (?P<seat>{SEAT})`},
		{Name: "generic", Pattern: `(?P<seat>{SEAT})`},
	}, nil)
	if err := c.Compile(); err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}

	if m := c.Parse("SEAT 12A"); m == nil || m.FormatName != "specific" {
		t.Errorf("first format did not win: %v", m)
	}
	if m := c.Parse("12A"); m == nil || m.FormatName != "generic" {
		t.Errorf("fallback format did not match: %v", m)
	}

	all := c.ParseAll("SEAT 12A")
	if len(all) != 2 {
		t.Errorf("ParseAll matched %d formats, want 2", len(all))
	}
}

func TestGetCaptureDefault(t *testing.T) {
	var m *Match
	if got := m.GetCapture("anything", "fallback"); got != "fallback" {
		t.Errorf("nil match capture = %q, want fallback", got)
	}
}

func TestNormalise(t *testing.T) {
	got := Normalise("flight\tDL1234  \r\n  gate  b12")
	want := "FLIGHT DL1234\nGATE B12"
	if got != want {
		t.Errorf("Normalise = %q, want %q", got, want)
	}
}

func TestWordBounded(t *testing.T) {
	text := "AB12A CD"
	if WordBounded(text, 2, 5) { // "12A" inside "AB12A"
		t.Error("embedded run reported as bounded")
	}
	if !WordBounded(text, 6, 8) { // "CD"
		t.Error("standalone word reported as unbounded")
	}
}
