package game

import "catan/meta"

// LongestPath returns the number of roads on the longest simple path through
// the player's road network. A path never visits a node twice.
func (p *Player) LongestPath() int {
	best := 0
	visited := make(map[NodeID]bool, len(p.touching))
	for _, start := range p.RoadNodes() {
		best = max(best, p.walk(start, visited))
	}
	return best
}

// walk is a depth first search from n. visited holds the nodes of the current
// path and is restored before returning.
func (p *Player) walk(n NodeID, visited map[NodeID]bool) int {
	visited[n] = true
	best := 0
	for _, next := range p.touching[n] {
		if visited[next] {
			continue
		}
		best = max(best, 1+p.walk(next, visited))
	}
	delete(visited, n)
	return best
}

// updateLongestRoad recomputes a player's longest road after a new road and
// moves the bonus if the player now strictly beats every earlier length.
func (s *State) updateLongestRoad(seat int) {
	p := s.Players[seat]
	p.LongestRoad = p.LongestPath()
	if p.LongestRoad <= s.LongestRoad {
		return
	}
	s.LongestRoad = p.LongestRoad
	if p.LongestRoad < meta.LONGEST_ROAD_MIN || s.LongestRoadHolder == seat {
		return
	}
	if prev := s.LongestRoadHolder; prev >= 0 {
		s.Players[prev].HasLongestRoad = false
		s.Players[prev].Score -= meta.BONUS_POINTS
	}
	p.HasLongestRoad = true
	p.Score += meta.BONUS_POINTS
	s.LongestRoadHolder = seat
}

// updateLargestArmy moves the army bonus to seat once it has played at least
// the minimum number of knights and strictly more than the current holder.
func (s *State) updateLargestArmy(seat int) {
	p := s.Players[seat]
	if p.Knights < meta.LARGEST_ARMY_MIN || p.Knights <= s.LargestArmy {
		return
	}
	s.LargestArmy = p.Knights
	if s.LargestArmyHolder == seat {
		return
	}
	if prev := s.LargestArmyHolder; prev >= 0 {
		s.Players[prev].HasLargestArmy = false
		s.Players[prev].Score -= meta.BONUS_POINTS
	}
	p.HasLargestArmy = true
	p.Score += meta.BONUS_POINTS
	s.LargestArmyHolder = seat
}
