package services

// improveEpsilon ignores gains below floating point noise so 2-opt terminates.
const improveEpsilon = 1e-9

// improveTrip shortens the closed tour depot -> stops -> depot with 2-opt
// segment reversals until no reversal helps. Distances are assumed symmetric.
// The set of stops is unchanged, so the trip's cargo stays feasible.
func improveTrip(stops []int, m distanceMatrix) []int {
	if len(stops) < 3 {
		return stops
	}

	route := make([]int, 0, len(stops)+2)
	route = append(route, 0)
	route = append(route, stops...)
	route = append(route, 0)

	for improved := true; improved; {
		improved = false
		for i := 1; i < len(route)-2; i++ {
			for k := i + 1; k < len(route)-1; k++ {
				a, b := route[i-1], route[i]
				c, d := route[k], route[k+1]

				delta := m.km(a, c) + m.km(b, d) - m.km(a, b) - m.km(c, d)
				if delta < -improveEpsilon {
					reverse(route[i : k+1])
					improved = true
				}
			}
		}
	}

	return route[1 : len(route)-1]
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// tripKm is the closed tour length of one trip.
func tripKm(stops []int, m distanceMatrix) float64 {
	if len(stops) == 0 {
		return 0
	}
	km := m.km(0, stops[0])
	for i := 1; i < len(stops); i++ {
		km += m.km(stops[i-1], stops[i])
	}
	return km + m.km(stops[len(stops)-1], 0)
}
