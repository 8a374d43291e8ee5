// Package cpu implements the single bit disc computer and its macro assembler.
//
// The CPU consists of a one bit register, eight multiplexed data lines
// (DA1-DA8) selected by the DA opcodes, and a program counter that loops
// back to the start of the program unless the halt flag (the DA1 latch) is
// set. The DA2 latch is the skip flag tested by SKZ. In tape mode, DA3-DA5
// and DA6-DA8 drive two unbounded bit tapes instead of plain I/O.
//
// The assembler expands def/end macros to a fixpoint, and pads the
// resulting program with NOTs to a whole number of 27 disc blocks.
package cpu
