package manager

// FocusRing tracks and rotates focus across panel indices.
type FocusRing struct {
	Current  int   // Index of the focused panel, -1 for none
	Order    []int // Rotation order
	OnChange func(from, to int)
}

// NewFocusRing returns a ring over order with nothing focused.
func NewFocusRing(order ...int) *FocusRing {
	return &FocusRing{Current: -1, Order: order}
}

func (f *FocusRing) position() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

func (f *FocusRing) move(to int) int {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
	return f.Current
}

// Next advances focus to the next index in order and returns it.
// Returns -1 if the ring is empty.
func (f *FocusRing) Next() int {
	if len(f.Order) == 0 {
		return -1
	}
	return f.move(f.Order[(f.position()+1)%len(f.Order)])
}

// Prev moves focus to the previous index in order.
func (f *FocusRing) Prev() int {
	if len(f.Order) == 0 {
		return -1
	}
	i := f.position() - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	return f.move(f.Order[i])
}

// Set focuses id. Returns false if id is not in the ring.
func (f *FocusRing) Set(id int) bool {
	for _, o := range f.Order {
		if o == id {
			f.move(id)
			return true
		}
	}
	return false
}
