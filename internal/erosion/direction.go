package erosion

// Direction addresses one of the four neighbours of a cell.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Directions lists every Direction in index order.
var Directions = [4]Direction{Top, Right, Bottom, Left}

// Opposite returns the direction pointing back at the cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the grid step (dx, dy) towards the neighbour.
func (d Direction) Offset() [2]int {
	switch d {
	case Top:
		return [2]int{0, 1}
	case Right:
		return [2]int{1, 0}
	case Bottom:
		return [2]int{0, -1}
	case Left:
		return [2]int{-1, 0}
	}
	panic("erosion: invalid direction")
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}
