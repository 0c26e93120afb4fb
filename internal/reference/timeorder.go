package reference

import "boardingpass_parser/internal/boardingpass"

// DefaultTimeOrder is the left-to-right (or top-to-bottom) order in which
// most carriers print unlabelled times on a boarding pass.
var DefaultTimeOrder = []boardingpass.TimeRole{
	boardingpass.RoleBoarding,
	boardingpass.RoleDeparture,
	boardingpass.RoleArrival,
}

// arrivalFirstCarriers print the arrival time ahead of the departure time.
var arrivalFirstCarriers = map[string][]boardingpass.TimeRole{
	"BA": {boardingpass.RoleBoarding, boardingpass.RoleArrival, boardingpass.RoleDeparture},
	"LH": {boardingpass.RoleBoarding, boardingpass.RoleArrival, boardingpass.RoleDeparture},
	"NH": {boardingpass.RoleBoarding, boardingpass.RoleArrival, boardingpass.RoleDeparture},
	"SQ": {boardingpass.RoleBoarding, boardingpass.RoleArrival, boardingpass.RoleDeparture},
}

// AirlineTimeOrder returns the expected ordering of unlabelled time tokens
// for a carrier. Unknown carriers get the default ordering.
func AirlineTimeOrder(airlineCode string) []boardingpass.TimeRole {
	if order, ok := arrivalFirstCarriers[airlineCode]; ok {
		return order
	}
	return DefaultTimeOrder
}
