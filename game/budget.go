package game

// Budget counts successor calls for one decision frame. It is owned by the host
// and shared by every state derived from the frame's real state.
type Budget struct {
	limit int
	used  int
}

func NewBudget(limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: limit}
}

// Spend consumes one call. Once the limit is reached every call fails with
// ErrBudgetExhausted and the counter stops moving.
func (b *Budget) Spend() error {
	if b.used >= b.limit {
		return ErrBudgetExhausted
	}
	b.used++
	return nil
}

func (b *Budget) Used() int {
	return b.used
}

func (b *Budget) Limit() int {
	return b.limit
}

func (b *Budget) Remaining() int {
	return b.limit - b.used
}

func (b *Budget) Exhausted() bool {
	return b.used >= b.limit
}

// Reset starts a new frame with the same limit.
func (b *Budget) Reset() {
	b.used = 0
}
