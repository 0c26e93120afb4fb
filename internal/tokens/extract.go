package tokens

import (
	"strings"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/patterns"
	"boardingpass_parser/internal/reference"
)

// Extract scans text for boarding-pass domain tokens. The input is
// normalised (uppercased, whitespace-collapsed) internally. Rules run in a
// fixed priority order: table-row formats first, then keyword-anchored
// single-field patterns, then positional fallbacks. Extract is a pure
// function of its input and never fails; unmatched patterns simply produce
// no token.
func Extract(text string) boardingpass.TokenSet {
	norm := patterns.Normalise(text)

	c := &collector{}

	extractTableRows(c, norm)
	extractConfirmation(c, norm)
	extractPassengerName(c, norm)
	extractFlightNumbers(c, norm)
	extractDates(c, norm)
	extractTimes(c, norm)
	extractAirports(c, norm)
	extractGateSeatTerminal(c, norm)

	return c.tokens
}

// collector accumulates tokens, dropping duplicates of the same kind and
// value so that high-priority rules win over generic ones.
type collector struct {
	tokens boardingpass.TokenSet
}

func (c *collector) add(t boardingpass.Token) {
	for _, have := range c.tokens {
		if have.Kind == t.Kind && have.Value == t.Value {
			return
		}
	}
	c.tokens = append(c.tokens, t)
}

// has reports whether any token of the kind was already emitted.
func (c *collector) has(kind boardingpass.TokenKind) bool {
	return c.tokens.First(kind) != nil
}

// extractTableRows runs the grok table formats. Table rows resolve roles
// unambiguously, which is why they run before everything else.
func extractTableRows(c *collector, text string) {
	for _, m := range tableCompiler.ParseAll(text) {
		meta := map[string]string{"rule": m.FormatName}

		if v := m.Captures["flight"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindFlight, Value: strings.ReplaceAll(v, " ", ""), Position: m.Position, Meta: meta})
		}
		if v := m.Captures["date"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindDate, Value: v, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["depart"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindTime, Value: v, Role: boardingpass.RoleDeparture, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["arrive"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindTime, Value: v, Role: boardingpass.RoleArrival, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["boarding"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindTime, Value: v, Role: boardingpass.RoleBoarding, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["gate"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindGate, Value: v, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["seat"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindSeat, Value: v, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["origin"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: v, Role: boardingpass.RoleDeparture, Position: m.Position, Meta: meta})
		}
		if v := m.Captures["destination"]; v != "" {
			c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: v, Role: boardingpass.RoleArrival, Position: m.Position, Meta: meta})
		}
	}
}

func extractConfirmation(c *collector, text string) {
	loc := patterns.ConfirmationPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return
	}
	c.add(boardingpass.Token{
		Kind:     boardingpass.KindConfirmation,
		Value:    text[loc[2]:loc[3]],
		Position: loc[2],
	})
}

func extractPassengerName(c *collector, text string) {
	if loc := patterns.PassengerNamePattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{
			Kind:     boardingpass.KindPassengerName,
			Value:    text[loc[2]:loc[3]],
			Position: loc[2],
		})
		return
	}

	// Bare LAST/FIRST fallback. Require both parts to be at least three
	// letters so airport pairs like "LAX/JFK" and airline codes don't match.
	for _, loc := range patterns.PassengerSlashPattern.FindAllStringSubmatchIndex(text, -1) {
		last, first := text[loc[2]:loc[3]], text[loc[4]:loc[5]]
		if len(last) < 3 || len(first) < 3 {
			continue
		}
		if reference.IsKnownAirport(last) || reference.IsKnownAirport(first) {
			continue
		}
		c.add(boardingpass.Token{
			Kind:     boardingpass.KindPassengerName,
			Value:    last + "/" + first,
			Position: loc[0],
		})
		return
	}
}

func extractFlightNumbers(c *collector, text string) {
	for _, loc := range patterns.FlightNumPattern.FindAllStringSubmatchIndex(text, -1) {
		if !patterns.WordBounded(text, loc[0], loc[1]) {
			continue
		}
		prefix := text[loc[2]:loc[3]]
		digits := text[loc[4]:loc[5]]

		// A prefix with a digit in it ("B6", "F9") is only plausible when it
		// names a known carrier; otherwise the match is likely a gate or a
		// row number fragment.
		if !isAlphaPrefix(prefix) && !reference.IsKnownAirline(prefix) {
			continue
		}
		c.add(boardingpass.Token{
			Kind:     boardingpass.KindFlight,
			Value:    prefix + digits,
			Position: loc[0],
		})
	}
}

func isAlphaPrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func extractDates(c *collector, text string) {
	if c.has(boardingpass.KindDate) {
		return
	}
	for _, re := range []interface {
		FindStringIndex(string) []int
	}{
		patterns.DateFullMonthPattern,
		patterns.DateMonthFirstAbbrev,
		patterns.DateAbbrevPattern,
		patterns.DateNumericPattern,
	} {
		if loc := re.FindStringIndex(text); loc != nil {
			c.add(boardingpass.Token{
				Kind:     boardingpass.KindDate,
				Value:    text[loc[0]:loc[1]],
				Position: loc[0],
			})
			return
		}
	}
}

func extractTimes(c *collector, text string) {
	for _, loc := range patterns.TimePattern.FindAllStringIndex(text, -1) {
		raw := strings.TrimSpace(text[loc[0]:loc[1]])
		c.add(boardingpass.Token{
			Kind:     boardingpass.KindTime,
			Value:    raw,
			Role:     timeRole(text, loc[0]),
			Position: loc[0],
		})
	}
}

// timeRole looks back a fixed window before the time token for a role
// keyword. Tokens with no keyword nearby are left unresolved; the pipeline
// falls back to the airline's positional convention.
func timeRole(text string, pos int) boardingpass.TimeRole {
	start := pos - patterns.RoleLookbackWindow
	if start < 0 {
		start = 0
	}
	window := text[start:pos]

	for _, kw := range patterns.DepartKeywords {
		if strings.Contains(window, kw) {
			return boardingpass.RoleDeparture
		}
	}
	for _, kw := range patterns.ArrivalKeywords {
		if strings.Contains(window, kw) {
			return boardingpass.RoleArrival
		}
	}
	for _, kw := range patterns.BoardingKeywords {
		if strings.Contains(window, kw) {
			return boardingpass.RoleBoarding
		}
	}
	return boardingpass.RoleUnknown
}

func extractAirports(c *collector, text string) {
	// Explicit anchors first.
	if loc := patterns.FromPattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: text[loc[2]:loc[3]], Role: boardingpass.RoleDeparture, Position: loc[2]})
	}
	if loc := patterns.ToPattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: text[loc[2]:loc[3]], Role: boardingpass.RoleArrival, Position: loc[2]})
	}
	if loc := patterns.RouteArrowPattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: text[loc[2]:loc[3]], Role: boardingpass.RoleDeparture, Position: loc[2]})
		c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: text[loc[4]:loc[5]], Role: boardingpass.RoleArrival, Position: loc[4]})
	}

	// Generic candidates: word-bounded 3-letter codes that are either in the
	// airport table or in the OCR confusion table.
	type cand struct {
		value string
		pos   int
	}
	var cands []cand
	for _, loc := range patterns.AirportCodePattern.FindAllStringSubmatchIndex(text, -1) {
		code := text[loc[2]:loc[3]]
		if !patterns.WordBounded(text, loc[0], loc[1]) || reference.IsAirportBlocked(code) {
			continue
		}
		if !reference.IsKnownAirport(code) {
			if _, ok := reference.ConfusedAirport(code); !ok {
				continue
			}
		}
		if tokenExistsAt(c, code) {
			continue
		}
		cands = append(cands, cand{code, loc[2]})
	}

	// No anchors: assign by left-to-right position. First code is the
	// origin, last is the destination.
	haveOrigin := c.tokens.ByRole(boardingpass.KindAirport, boardingpass.RoleDeparture) != nil
	haveDest := c.tokens.ByRole(boardingpass.KindAirport, boardingpass.RoleArrival) != nil

	for i, cd := range cands {
		role := boardingpass.RoleUnknown
		switch {
		case !haveOrigin:
			role = boardingpass.RoleDeparture
			haveOrigin = true
		case !haveDest && i == len(cands)-1:
			role = boardingpass.RoleArrival
			haveDest = true
		}
		c.add(boardingpass.Token{Kind: boardingpass.KindAirport, Value: cd.value, Role: role, Position: cd.pos})
	}
}

// tokenExistsAt reports whether an airport token with this value was already
// emitted by an anchored rule.
func tokenExistsAt(c *collector, value string) bool {
	for _, t := range c.tokens {
		if t.Kind == boardingpass.KindAirport && t.Value == value {
			return true
		}
	}
	return false
}

func extractGateSeatTerminal(c *collector, text string) {
	if loc := patterns.GatePattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindGate, Value: text[loc[2]:loc[3]], Position: loc[2]})
	}
	if loc := patterns.TerminalPattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindTerminal, Value: text[loc[2]:loc[3]], Position: loc[2]})
	}

	if loc := patterns.SeatLabeledPattern.FindStringSubmatchIndex(text); loc != nil {
		c.add(boardingpass.Token{Kind: boardingpass.KindSeat, Value: text[loc[2]:loc[3]], Position: loc[2]})
		return
	}
	if c.has(boardingpass.KindSeat) {
		return
	}
	// Bare row+letter fallback, only when word-bounded so a flight number
	// suffix is never read as a seat.
	for _, loc := range patterns.SeatBarePattern.FindAllStringSubmatchIndex(text, -1) {
		if !patterns.WordBounded(text, loc[0], loc[1]) {
			continue
		}
		c.add(boardingpass.Token{Kind: boardingpass.KindSeat, Value: text[loc[2]:loc[3]], Position: loc[2]})
		return
	}
}
