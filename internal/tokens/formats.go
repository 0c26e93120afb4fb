// Package tokens implements the boarding-pass lexer. This file defines the
// grok-style table-row formats tried before any generic single-field rule,
// because a matched table row resolves field roles unambiguously.
package tokens

import "boardingpass_parser/internal/patterns"

// tableFormats are the high-specificity layouts printed by airline stock.
// Order matters: the first matching format wins per document region.
var tableFormats = []patterns.Format{
	// Header row "FLIGHT DATE TIME" followed by a data row.
	// Example:
	//   FLIGHT  DATE      TIME
	//   DL1234  09OCT24   15:30
	{
		Name: "flight_table",
		Pattern: `FLIGHT{WS}DATE{WS}(?:TIME|DEPARTS?){NL}` +
			`(?P<flight>{FLIGHT}){WS}(?P<date>(?:{DATE_ABBREV}|{DATE_NUM})){WS}(?P<depart>{TIME12})`,
	},
	// Header row "GATE BOARDING SEAT" followed by a data row.
	// Example:
	//   GATE  BOARDING  SEAT
	//   B12   15:00     12A
	{
		Name: "gate_table",
		Pattern: `GATE{WS}(?:BOARDING|BOARDS?|BRD)(?:{WS}TIME)?{WS}SEAT{NL}` +
			`(?P<gate>{GATE}){WS}(?P<boarding>{TIME12}){WS}(?P<seat>{SEAT})`,
	},
	// Stacked FROM/TO block.
	// Example:
	//   FROM: LAX
	//   TO: JFK
	{
		Name: "fromto_block",
		Pattern: `FROM[:{WS}]+(?P<origin>{AIRPORT})(?:{NL}|{WS})` +
			`TO[:{WS}]+(?P<destination>{AIRPORT})`,
	},
	// Departure/arrival column pair.
	// Example:
	//   DEPARTS 15:30   ARRIVES 23:45
	{
		Name: "depart_arrive_row",
		Pattern: `DEPART(?:S|URE)?[:{WS}]+(?P<depart>{TIME12})` +
			`.{0,40}?ARRIV(?:ES|AL)?[:{WS}]+(?P<arrive>{TIME12})`,
	},
}

// tableCompiler is built once; formats and base patterns are immutable.
var tableCompiler = func() *patterns.Compiler {
	c := patterns.NewCompiler(tableFormats, nil)
	if err := c.Compile(); err != nil {
		panic("tokens: bad table format: " + err.Error())
	}
	return c
}()
