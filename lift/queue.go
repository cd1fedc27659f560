package lift

const initialQueueCapacity = 8

// PendingQueue is a FIFO of requests that found no idle lift.
// Pop is split into Peek and Commit so a request only leaves the queue
// once a lift has actually been assigned to it.
type PendingQueue struct {
	buf  []Request
	head int
	size int
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{buf: make([]Request, initialQueueCapacity)}
}

func (q *PendingQueue) Len() int { return q.size }

func (q *PendingQueue) Push(r Request) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = r
	q.size++
}

// Peek returns the oldest request without removing it.
func (q *PendingQueue) Peek() (Request, bool) {
	if q.size == 0 {
		return Request{}, false
	}
	return q.buf[q.head], true
}

// Commit removes the oldest request, the one Peek returned.
func (q *PendingQueue) Commit() (Request, bool) {
	r, ok := q.Peek()
	if !ok {
		return r, false
	}
	q.buf[q.head] = Request{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return r, true
}

// Items copies the queue in FIFO order.
func (q *PendingQueue) Items() []Request {
	items := make([]Request, q.size)
	for i := range items {
		items[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return items
}

func (q *PendingQueue) Clear() {
	q.buf = make([]Request, initialQueueCapacity)
	q.head = 0
	q.size = 0
}

func (q *PendingQueue) grow() {
	n := len(q.buf) * 2
	if n == 0 {
		n = initialQueueCapacity
	}
	q.buf = append(q.Items(), make([]Request, n-q.size)...)
	q.head = 0
}
