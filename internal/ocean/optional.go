package ocean

// optional holds at most one value of T. The wave machines live in these
// slots so presence is explicit state rather than a nil pointer.
type optional[T any] struct {
	value T
	set   bool
}

func (o *optional[T]) emplace(v T) {
	o.value = v
	o.set = true
}

func (o *optional[T]) reset() {
	var zero T
	o.value = zero
	o.set = false
}

// get returns a pointer into the slot so machines can be advanced in place.
func (o *optional[T]) get() (*T, bool) {
	if !o.set {
		return nil, false
	}
	return &o.value, true
}
