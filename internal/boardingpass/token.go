// Package boardingpass provides the core data types shared across the
// extraction pipeline: tokens produced by the lexer, zoned instants produced
// by the time resolver, and the flight record draft the pipeline accumulates.
package boardingpass

// TokenKind identifies the semantic class of a recognised token.
type TokenKind string

const (
	KindAirport       TokenKind = "airport"
	KindFlight        TokenKind = "flight"
	KindTime          TokenKind = "time"
	KindDate          TokenKind = "date"
	KindGate          TokenKind = "gate"
	KindSeat          TokenKind = "seat"
	KindTerminal      TokenKind = "terminal"
	KindConfirmation  TokenKind = "confirmation"
	KindPassengerName TokenKind = "passenger_name"
)

// TimeRole distinguishes which flight event a time token refers to.
// Airport tokens reuse RoleDeparture/RoleArrival for origin/destination.
type TimeRole string

const (
	RoleUnknown   TimeRole = ""
	RoleDeparture TimeRole = "departure"
	RoleArrival   TimeRole = "arrival"
	RoleBoarding  TimeRole = "boarding"
)

// Token is a single recognised domain token. Tokens are immutable once
// produced by the extractor; the pipeline consumes and discards them after
// field resolution.
type Token struct {
	Kind     TokenKind         `json:"kind"`
	Value    string            `json:"value"`
	Position int               `json:"position"` // Byte offset into the normalised text.
	Role     TimeRole          `json:"role,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// TokenSet is the flat list of tokens produced by one extraction call.
type TokenSet []Token

// First returns the first token of the given kind, or nil.
func (s TokenSet) First(kind TokenKind) *Token {
	for i := range s {
		if s[i].Kind == kind {
			return &s[i]
		}
	}
	return nil
}

// ByKind returns all tokens of the given kind in source order.
func (s TokenSet) ByKind(kind TokenKind) []Token {
	var out []Token
	for _, t := range s {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// ByRole returns the first token of the given kind carrying the given role,
// or nil.
func (s TokenSet) ByRole(kind TokenKind, role TimeRole) *Token {
	for i := range s {
		if s[i].Kind == kind && s[i].Role == role {
			return &s[i]
		}
	}
	return nil
}
