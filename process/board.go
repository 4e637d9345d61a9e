package process

// Step is one stage of the tracked pipeline.
type Step struct {
	ID     int
	Title  string
	Status Status
}

// DefaultTitles are the titles of the four pipeline stages, in id order.
var DefaultTitles = []string{
	"Validasi Input",
	"Proses Data",
	"Simpan ke Database",
	"Kirim Notifikasi",
}

// Board is the ordered, fixed-size list of steps. Steps are never added or
// removed after construction; only their status changes.
type Board struct {
	steps []Step
}

// NewBoard creates a board with the default four steps, all pending.
func NewBoard() *Board {
	steps := make([]Step, len(DefaultTitles))
	for i, title := range DefaultTitles {
		steps[i] = Step{ID: i + 1, Title: title, Status: StatusPending}
	}
	return &Board{steps: steps}
}

// Steps returns a copy of the steps in display order.
func (b *Board) Steps() []Step {
	out := make([]Step, len(b.steps))
	copy(out, b.steps)
	return out
}

// Step returns the step with the given id.
func (b *Board) Step(id int) (Step, bool) {
	for _, s := range b.steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// Len returns the number of steps.
func (b *Board) Len() int { return len(b.steps) }

// Reset puts every step back to pending.
func (b *Board) Reset() {
	for i := range b.steps {
		b.steps[i].Status = StatusPending
	}
}

// SetStatus replaces the status of the step whose id matches. It reports
// whether a step matched; unknown ids leave the board unchanged.
func (b *Board) SetStatus(id int, status Status) bool {
	for i := range b.steps {
		if b.steps[i].ID == id {
			b.steps[i].Status = status
			return true
		}
	}
	return false
}
