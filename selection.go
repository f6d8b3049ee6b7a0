package tilegrid

// Transition names the effect of one Selection.Activate call.
type Transition uint8

const (
	TransitionNone       Transition = iota // nothing changed
	TransitionSelected                     // Unselected -> Selected(x,y)
	TransitionMoved                        // Selected(a) -> Selected(b), a != b
	TransitionDeselected                   // Selected(x,y) -> Unselected
)

func (t Transition) String() string {
	switch t {
	case TransitionSelected:
		return "selected"
	case TransitionMoved:
		return "moved"
	case TransitionDeselected:
		return "deselected"
	default:
		return "none"
	}
}

// Selection holds at most one selected tile. The zero value is Unselected.
// It never clears itself; only Activate on the selected tile or Clear do.
type Selection struct {
	x, y     int
	selected bool
}

// Selected returns the selected tile, if any.
func (s *Selection) Selected() (x, y int, ok bool) {
	if !s.selected {
		return 0, 0, false
	}
	return s.x, s.y, true
}

// IsSelected reports whether (x, y) is the selected tile.
func (s *Selection) IsSelected(x, y int) bool {
	return s.selected && s.x == x && s.y == y
}

// Activate applies a primary-button activation at (x, y):
// selecting from Unselected, toggling off the same tile, or moving to a
// different tile without passing through Unselected.
func (s *Selection) Activate(x, y int) Transition {
	switch {
	case !s.selected:
		s.x, s.y, s.selected = x, y, true
		return TransitionSelected
	case s.x == x && s.y == y:
		s.x, s.y, s.selected = 0, 0, false
		return TransitionDeselected
	default:
		s.x, s.y = x, y
		return TransitionMoved
	}
}

// Mutate applies a secondary-button event: the selected cell of g is flipped
// to its alternate kind. While Unselected it does nothing and reports false.
func (s *Selection) Mutate(g *Grid) (TileKind, bool, error) {
	if !s.selected {
		return 0, false, nil
	}
	kind, err := g.Flip(s.x, s.y)
	if err != nil {
		return 0, false, err
	}
	return kind, true, nil
}

// Clear returns to Unselected and reports whether anything was selected.
func (s *Selection) Clear() bool {
	was := s.selected
	s.x, s.y, s.selected = 0, 0, false
	return was
}
