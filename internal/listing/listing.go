// Package listing shapes repository rows into the display structures the
// browse endpoints return: the city-grouped venue listing and the
// past/upcoming partition of a detail page's shows.
package listing

import "github.com/iliyamo/booking-directory/internal/repository"

// CityGroup is one (city, state) section of the venue listing.
type CityGroup struct {
	City   string                    `json:"city"`
	State  string                    `json:"state"`
	Venues []repository.VenueCityRow `json:"venues"`
}

// GroupByCity folds venue rows into contiguous (city, state) groups in a
// single pass. Rows must already be ordered by (city, state, id); the output
// order is exactly the input order, and the sum of group sizes equals the
// number of input rows. Two cities with the same name in different states
// form separate groups.
func GroupByCity(rows []repository.VenueCityRow) []CityGroup {
	var groups []CityGroup
	for _, row := range rows {
		n := len(groups)
		if n > 0 && groups[n-1].City == row.City && groups[n-1].State == row.State {
			groups[n-1].Venues = append(groups[n-1].Venues, row)
			continue
		}
		groups = append(groups, CityGroup{
			City:   row.City,
			State:  row.State,
			Venues: []repository.VenueCityRow{row},
		})
	}
	return groups
}
