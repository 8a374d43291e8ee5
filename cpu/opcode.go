package cpu

// Opcode is one of the fifteen disc instructions.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOT     = Opcode(0)  // NOT
	OP_SKZ     = Opcode(1)  // SKZ
	OP_OR      = Opcode(2)  // OR
	OP_LD      = Opcode(3)  // LD
	OP_XOR     = Opcode(4)  // XOR
	OP_OUT     = Opcode(5)  // OUT
	OP_AND     = Opcode(6)  // AND
	OP_DA1     = Opcode(7)  // DA1
	OP_DA2     = Opcode(8)  // DA2
	OP_DA3     = Opcode(9)  // DA3
	OP_DA4     = Opcode(10) // DA4
	OP_DA5     = Opcode(11) // DA5
	OP_DA6     = Opcode(12) // DA6
	OP_DA7     = Opcode(13) // DA7
	OP_DA8     = Opcode(14) // DA8
	OP_INVALID = Opcode(15) // ???
)

// OPCODE_COUNT is the number of valid opcodes.
const OPCODE_COUNT = int(OP_INVALID)

// opcodeToken maps each opcode to the music disc that encodes it.
var opcodeToken = [OPCODE_COUNT]string{
	OP_NOT: "13",
	OP_SKZ: "cat",
	OP_OR:  "blocks",
	OP_LD:  "chirp",
	OP_XOR: "far",
	OP_OUT: "mall",
	OP_AND: "mellohi",
	OP_DA1: "stal",
	OP_DA2: "strd",
	OP_DA3: "ward",
	OP_DA4: "11",
	OP_DA5: "wait",
	OP_DA6: "pigstep",
	OP_DA7: "otherside",
	OP_DA8: "5",
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	m := make(map[string]Opcode, OPCODE_COUNT)
	for op := range Opcode(OPCODE_COUNT) {
		m[op.String()] = op
	}
	return m
}()

// tokenMap maps disc tokens to opcodes.
var tokenMap = func() map[string]Opcode {
	m := make(map[string]Opcode, OPCODE_COUNT)
	for op, token := range opcodeToken {
		m[token] = Opcode(op)
	}
	return m
}()

// ParseToken looks up a disc token.
func ParseToken(token string) (op Opcode, ok bool) {
	op, ok = tokenMap[token]
	if !ok {
		op = OP_INVALID
	}
	return
}

// ParseOpcode looks up a mnemonic.
func ParseOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodeMap[mnemonic]
	if !ok {
		op = OP_INVALID
	}
	return
}

// Valid returns true for the fifteen real opcodes.
func (op Opcode) Valid() bool {
	return op >= OP_NOT && op < OP_INVALID
}

// Token returns the disc token for the opcode, or the empty string if invalid.
func (op Opcode) Token() string {
	if !op.Valid() {
		return ""
	}
	return opcodeToken[op]
}

// Number returns the opcode's hardware number, 1 (NOT) through 15 (DA8).
func (op Opcode) Number() int {
	if !op.Valid() {
		return 0
	}
	return int(op) + 1
}

// DataLine returns the data line index selected by DA1..DA8.
func (op Opcode) DataLine() (index int, ok bool) {
	if op < OP_DA1 || op > OP_DA8 {
		return
	}
	return int(op - OP_DA1), true
}
