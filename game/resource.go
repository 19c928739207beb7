package game

import "fmt"

// Resource is one of the five tradeable resources. Desert is only a tile kind.
type Resource int

const (
	Ore Resource = iota
	Brick
	Wood
	Wool
	Grain
	Desert // tile kind only, never held or traded
)

// NumResources is the number of tradeable resources.
const NumResources = int(Desert)

// AllResources lists the tradeable resources in index order.
var AllResources = []Resource{Ore, Brick, Wood, Wool, Grain}

var resourceNames = []string{"ore", "brick", "wood", "wool", "grain", "desert"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// Tradeable reports whether r can be held in a hand.
func (r Resource) Tradeable() bool {
	return r >= 0 && int(r) < NumResources
}

// ParseResource maps a name back to its Resource.
func ParseResource(name string) (Resource, error) {
	for i, n := range resourceNames {
		if n == name {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", name)
}

// Resources counts cards per resource, indexed by Resource.
type Resources [NumResources]int

// Total returns the number of cards held.
func (r Resources) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Covers reports whether r holds at least cost of every resource.
func (r Resources) Covers(cost Resources) bool {
	for i, n := range cost {
		if r[i] < n {
			return false
		}
	}
	return true
}

// Sub removes cost from r.
func (r *Resources) Sub(cost Resources) {
	for i, n := range cost {
		r[i] -= n
	}
}

// Plus returns the sum of r and o.
func (r Resources) Plus(o Resources) Resources {
	for i, n := range o {
		r[i] += n
	}
	return r
}

// Times returns how many copies of cost r can pay for.
func (r Resources) Times(cost Resources) int {
	times := -1
	for i, n := range cost {
		if n == 0 {
			continue
		}
		if t := r[i] / n; times < 0 || t < times {
			times = t
		}
	}
	if times < 0 {
		return 0
	}
	return times
}
