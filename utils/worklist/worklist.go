package worklist

// Worklist is a FIFO queue with set semantics: adding an element that
// is already queued is a no-op, so each pending element occupies at
// most one slot regardless of how many predecessors scheduled it.
type Worklist[T comparable] struct {
	list   []T
	queued map[T]bool
}

// Start worklist execution with the provided `start` elements and an
// iteration function. The iteration function exposes the next element
// and a function with which to add more elements to the worklist.
func Start[T comparable](start []T, do func(next T, add func(el T))) {
	w := Empty[T]()
	for _, e := range start {
		w.Add(e)
	}

	w.Process(do)
}

func Empty[T comparable]() Worklist[T] {
	return Worklist[T]{queued: make(map[T]bool)}
}

func (w *Worklist[T]) GetNext() (ret T) {
	if len(w.list) == 0 {
		return
	}
	next := w.list[0]
	w.list = w.list[1:]
	delete(w.queued, next)
	return next
}

func (w *Worklist[T]) IsEmpty() bool {
	return len(w.list) == 0
}

func (w *Worklist[T]) Process(
	do func(
		next T,
		add func(element T))) {
	for !w.IsEmpty() {
		do(w.GetNext(), w.Add)
	}
}

func (w *Worklist[T]) Add(el T) {
	if w.queued[el] {
		return
	}
	w.queued[el] = true
	w.list = append(w.list, el)
}
