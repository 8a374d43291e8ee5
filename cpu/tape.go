package cpu

// Tape is an unbounded bit tape with a single head.
// Cells never written read as false.
type Tape struct {
	Cell map[int]bool
	Head int
}

// Reset clears the tape and parks the head at zero.
func (tp *Tape) Reset() {
	clear(tp.Cell)
	tp.Head = 0
}

// Read returns the cell under the head.
func (tp *Tape) Read() bool {
	return tp.Cell[tp.Head]
}

// Write toggles the cell under the head when value is true.
// Writing false leaves the cell alone.
func (tp *Tape) Write(value bool) {
	if !value {
		return
	}
	if tp.Cell == nil {
		tp.Cell = make(map[int]bool)
	}
	tp.Cell[tp.Head] = !tp.Cell[tp.Head]
}

func (tp *Tape) MoveLeft() {
	tp.Head--
}

func (tp *Tape) MoveRight() {
	tp.Head++
}

// Window returns the cells from Head-radius through Head+radius.
func (tp *Tape) Window(radius int) (cells []bool) {
	cells = make([]bool, 0, 2*radius+1)
	for pos := tp.Head - radius; pos <= tp.Head+radius; pos++ {
		cells = append(cells, tp.Cell[pos])
	}
	return
}
