package tokens

import (
	"testing"

	"boardingpass_parser/internal/boardingpass"
)

const samplePass = "DELTA DL1234 DEPART 15:30 LAX TO JFK OCTOBER 9, 2024 SEAT 12A GATE B12"

func TestExtractSamplePass(t *testing.T) {
	toks := Extract(samplePass)

	if f := toks.First(boardingpass.KindFlight); f == nil || f.Value != "DL1234" {
		t.Errorf("flight = %v, want DL1234", f)
	}
	if d := toks.First(boardingpass.KindDate); d == nil || d.Value != "OCTOBER 9, 2024" {
		t.Errorf("date = %v, want OCTOBER 9, 2024", d)
	}

	dep := toks.ByRole(boardingpass.KindTime, boardingpass.RoleDeparture)
	if dep == nil || dep.Value != "15:30" {
		t.Errorf("departure time = %v, want 15:30", dep)
	}

	origin := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleDeparture)
	if origin == nil || origin.Value != "LAX" {
		t.Errorf("origin = %v, want LAX", origin)
	}
	dest := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleArrival)
	if dest == nil || dest.Value != "JFK" {
		t.Errorf("destination = %v, want JFK", dest)
	}

	if s := toks.First(boardingpass.KindSeat); s == nil || s.Value != "12A" {
		t.Errorf("seat = %v, want 12A", s)
	}
	if g := toks.First(boardingpass.KindGate); g == nil || g.Value != "B12" {
		t.Errorf("gate = %v, want B12", g)
	}

	// "B12" is a gate, not a one-letter-prefix flight number.
	for _, tok := range toks.ByKind(boardingpass.KindFlight) {
		if tok.Value == "B12" {
			t.Error("gate B12 misread as a flight number")
		}
	}
}

func TestExtractTableRow(t *testing.T) {
	toks := Extract("FLIGHT  DATE     TIME\nDL1234  09OCT24  15:30")

	if f := toks.First(boardingpass.KindFlight); f == nil || f.Value != "DL1234" {
		t.Errorf("flight = %v, want DL1234", f)
	}
	if d := toks.First(boardingpass.KindDate); d == nil || d.Value != "09OCT24" {
		t.Errorf("date = %v, want 09OCT24", d)
	}
	// A table row resolves the role without any keyword lookback.
	dep := toks.ByRole(boardingpass.KindTime, boardingpass.RoleDeparture)
	if dep == nil || dep.Value != "15:30" {
		t.Errorf("departure from table row = %v, want 15:30", dep)
	}
}

func TestExtractGateTableRow(t *testing.T) {
	toks := Extract("GATE  BOARDING  SEAT\nB12   15:00     12A")

	if g := toks.First(boardingpass.KindGate); g == nil || g.Value != "B12" {
		t.Errorf("gate = %v, want B12", g)
	}
	brd := toks.ByRole(boardingpass.KindTime, boardingpass.RoleBoarding)
	if brd == nil || brd.Value != "15:00" {
		t.Errorf("boarding time = %v, want 15:00", brd)
	}
	if s := toks.First(boardingpass.KindSeat); s == nil || s.Value != "12A" {
		t.Errorf("seat = %v, want 12A", s)
	}
}

func TestExtractTimeRoles(t *testing.T) {
	toks := Extract("BOARDING 14:45 DEPARTS 15:30 ARRIVES 23:45")

	tests := []struct {
		role boardingpass.TimeRole
		want string
	}{
		{boardingpass.RoleBoarding, "14:45"},
		{boardingpass.RoleDeparture, "15:30"},
		{boardingpass.RoleArrival, "23:45"},
	}
	for _, tt := range tests {
		got := toks.ByRole(boardingpass.KindTime, tt.role)
		if got == nil || got.Value != tt.want {
			t.Errorf("role %s = %v, want %s", tt.role, got, tt.want)
		}
	}
}

func TestExtractUnlabelledTimeRole(t *testing.T) {
	toks := Extract("DL1234 LAX JFK 15:30")
	times := toks.ByKind(boardingpass.KindTime)
	if len(times) != 1 {
		t.Fatalf("got %d time tokens, want 1", len(times))
	}
	if times[0].Role != boardingpass.RoleUnknown {
		t.Errorf("role = %q, want unresolved", times[0].Role)
	}
}

func TestExtractRouteArrow(t *testing.T) {
	for _, text := range []string{"DL1234 LAX - JFK", "DL1234 LAX->JFK"} {
		toks := Extract(text)
		origin := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleDeparture)
		dest := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleArrival)
		if origin == nil || origin.Value != "LAX" {
			t.Errorf("Extract(%q) origin = %v, want LAX", text, origin)
		}
		if dest == nil || dest.Value != "JFK" {
			t.Errorf("Extract(%q) destination = %v, want JFK", text, dest)
		}
	}
}

// With no FROM/TO anchors, the first code is the origin and the last the
// destination.
func TestExtractPositionalAirports(t *testing.T) {
	toks := Extract("UA0088 SFO ORD 09:15")
	origin := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleDeparture)
	dest := toks.ByRole(boardingpass.KindAirport, boardingpass.RoleArrival)
	if origin == nil || origin.Value != "SFO" {
		t.Errorf("origin = %v, want SFO", origin)
	}
	if dest == nil || dest.Value != "ORD" {
		t.Errorf("destination = %v, want ORD", dest)
	}
}

func TestExtractConfirmationAndName(t *testing.T) {
	toks := Extract("PASSENGER: DOE/JANE CONFIRMATION: ABC123 DL1234")

	if c := toks.First(boardingpass.KindConfirmation); c == nil || c.Value != "ABC123" {
		t.Errorf("confirmation = %v, want ABC123", c)
	}
	if n := toks.First(boardingpass.KindPassengerName); n == nil || n.Value != "DOE/JANE" {
		t.Errorf("passenger = %v, want DOE/JANE", n)
	}
}

func TestExtractBareSlashName(t *testing.T) {
	toks := Extract("SMITH/ROBERT DL1234 LAX TO JFK")
	if n := toks.First(boardingpass.KindPassengerName); n == nil || n.Value != "SMITH/ROBERT" {
		t.Errorf("passenger = %v, want SMITH/ROBERT", n)
	}

	// An airport pair never reads as a name.
	toks = Extract("DL1234 LAX/JFK")
	if n := toks.First(boardingpass.KindPassengerName); n != nil {
		t.Errorf("airport pair misread as passenger name: %v", n)
	}
}

func TestExtractLowercaseInput(t *testing.T) {
	toks := Extract("delta dl1234 depart 15:30 lax to jfk")
	if f := toks.First(boardingpass.KindFlight); f == nil || f.Value != "DL1234" {
		t.Errorf("flight = %v, want DL1234", f)
	}
	if dep := toks.ByRole(boardingpass.KindTime, boardingpass.RoleDeparture); dep == nil {
		t.Error("departure role lost after normalisation")
	}
}

func TestExtractEmpty(t *testing.T) {
	if toks := Extract(""); len(toks) != 0 {
		t.Errorf("Extract(\"\") = %v, want no tokens", toks)
	}
}
