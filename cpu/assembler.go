// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/golang/glog"
)

const (
	MAX_NESTED_MACRO_DEPTH = 1024 // Default bound on expansion rounds.
	BLOCK_SIZE             = 27   // Discs per shulker box.
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	Name   string   // Name of the macro.
	LineNo int      // Line number of the def header.
	Params []string // Formal parameters.
	Lines  []string // Lines of macro text to expand.
}

// Line is a normalized source line.
type Line struct {
	LineNo int
	Text   string
}

// Assembler is a fixpoint macro assembler for the disc computer.
type Assembler struct {
	Verbose  bool // If set, verbosely logs the assembler actions.
	MaxDepth int  // Maximum expansion rounds, MAX_NESTED_MACRO_DEPTH if zero.

	Macro       map[string](*Macro) // Map of macros.
	Diagnostics []error             // Every problem reported by the last Parse.
}

// Normalize strips the comment and surrounding blanks from a line.
func Normalize(text string) string {
	text, _, _ = strings.Cut(text, ";")
	return strings.Trim(text, " \t")
}

// report records a diagnostic against a line.
func (asm *Assembler) report(line Line, err error) {
	err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
	if asm.Verbose {
		glog.Warningf("asm: %v", err)
	}
	asm.Diagnostics = append(asm.Diagnostics, err)
}

func (asm *Assembler) maxDepth() int {
	if asm.MaxDepth <= 0 {
		return MAX_NESTED_MACRO_DEPTH
	}
	return asm.MaxDepth
}

// Parse parses an input stream into a Program of opcodes.
//
// Parse is best-effort: the returned program holds everything that
// could be assembled, and err joins every diagnostic encountered.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []Line

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := Normalize(scanner.Text())
		if len(text) == 0 {
			continue
		}
		lines = append(lines, Line{LineNo: lineno, Text: text})
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Diagnostics = nil

	lines = asm.define(lines)
	lines = asm.expand(lines)
	prog = asm.link(lines)

	err = errors.Join(asm.Diagnostics...)
	return
}

// Expand runs macro expansion to a fixpoint over normalized lines, using
// the macros collected by the last Parse.
func (asm *Assembler) Expand(texts []string) (out []string, err error) {
	lines := make([]Line, len(texts))
	for n, text := range texts {
		lines[n] = Line{LineNo: n + 1, Text: text}
	}

	mark := len(asm.Diagnostics)
	for _, line := range asm.expand(lines) {
		out = append(out, line.Text)
	}

	err = errors.Join(asm.Diagnostics[mark:]...)
	return
}

// isOpcode checks the opcode table.
func isOpcode(text string) bool {
	_, ok := ParseOpcode(text)
	return ok
}

// isWord is true for opcodes and macro names.
func (asm *Assembler) isWord(text string) bool {
	_, ok := asm.Macro[text]
	return ok || isOpcode(text)
}

// isInvocation is true for invocations of a known macro.
func (asm *Assembler) isInvocation(text string) bool {
	name, _, ok := splitInvocation(text)
	if !ok {
		return false
	}
	_, ok = asm.Macro[name]
	return ok
}

// splitInvocation splits "name(arg, ...)" into its name and arguments.
func splitInvocation(text string) (name string, args []string, ok bool) {
	open := strings.IndexByte(text, '(')
	rparen := strings.LastIndexByte(text, ')')
	if open < 0 || rparen < open {
		return
	}

	name = strings.Trim(text[:open], " \t")
	args = splitList(text[open+1 : rparen])
	ok = true
	return
}

// splitList splits a comma separated list at parenthesis depth zero.
// Items are trimmed, and empty items dropped.
func splitList(text string) (items []string) {
	depth := 0
	start := 0
	add := func(item string) {
		item = strings.Trim(item, " \t")
		if len(item) > 0 {
			items = append(items, item)
		}
	}
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				add(text[start:n])
				start = n + 1
			}
		}
	}
	add(text[start:])
	return
}

const tokenDelimiters = "(), \t"

// replaceTokens substitutes whole tokens of text, simultaneously.
func replaceTokens(text string, bind map[string]string) string {
	var sb strings.Builder
	for len(text) > 0 {
		n := strings.IndexAny(text, tokenDelimiters)
		if n < 0 {
			n = len(text)
		}
		if n == 0 {
			sb.WriteByte(text[0])
			text = text[1:]
			continue
		}
		word := text[:n]
		if arg, ok := bind[word]; ok {
			word = arg
		}
		sb.WriteString(word)
		text = text[n:]
	}
	return sb.String()
}

// define collects every def ... end block into the macro table, returning
// the remaining lines.
func (asm *Assembler) define(lines []Line) (rest []Line) {
	for n := 0; n < len(lines); {
		if !strings.HasPrefix(lines[n].Text, "def ") {
			rest = append(rest, lines[n])
			n++
			continue
		}
		n = asm.defineMacro(lines, n)
	}

	return
}

// parseHeader parses "def NAME(p1, p2, ...)".
func parseHeader(text string) (macro *Macro, err error) {
	def := strings.TrimPrefix(text, "def ")

	open := strings.IndexByte(def, '(')
	if open < 0 {
		err = ErrMacroSyntax
		return
	}
	name := strings.Trim(def[:open], " \t")
	if len(name) == 0 {
		err = ErrMacroSyntax
		return
	}

	rparen := strings.IndexByte(def[open:], ')')
	if rparen < 0 {
		err = ErrMacroParen
		return
	}

	params := splitList(def[open+1 : open+rparen])
	for n, param := range params {
		if slices.Contains(params[:n], param) {
			err = ErrMacroParameterDuplicate
			return
		}
	}

	macro = &Macro{Name: name, Params: params}
	return
}

// defineMacro parses the definition starting at lines[start], returning the
// index of the first line after it.
func (asm *Assembler) defineMacro(lines []Line, start int) (next int) {
	header := lines[start]

	macro, err := parseHeader(header.Text)
	if err != nil {
		asm.report(header, err)
		return start + 1
	}
	macro.LineNo = header.LineNo

	var bad bool
	for next = start + 1; next < len(lines); next++ {
		line := lines[next]
		if line.Text == "end" {
			if !bad {
				if asm.Verbose {
					_, dup := asm.Macro[macro.Name]
					glog.Infof("asm: def %v(%v) %d lines (redefined: %v)",
						macro.Name, strings.Join(macro.Params, ", "), len(macro.Lines), dup)
				}
				asm.Macro[macro.Name] = macro
			}
			return next + 1
		}
		if bad {
			continue
		}

		switch {
		case strings.HasPrefix(line.Text, "def "):
			err = ErrMacroNesting
		case slices.Contains(macro.Params, line.Text),
			asm.isWord(line.Text):
			macro.Lines = append(macro.Lines, line.Text)
		default:
			if _, _, ok := splitInvocation(line.Text); ok {
				// Forward references are resolved during expansion.
				macro.Lines = append(macro.Lines, line.Text)
			} else {
				err = ErrMacroBody
			}
		}
		if err != nil {
			asm.report(line, &ErrMacro{Macro: macro.Name, Err: err})
			bad = true
		}
	}

	asm.report(header, &ErrMacro{Macro: macro.Name, Err: ErrMacroLonely})
	return
}

// expand rewrites lines until no invocations remain, or the depth bound
// is reached.
func (asm *Assembler) expand(lines []Line) []Line {
	expanded := true
	for round := 0; expanded && round < asm.maxDepth(); round++ {
		lines, expanded = asm.expandOnce(lines)
		if asm.Verbose {
			glog.Infof("asm: round %d: %d lines", round, len(lines))
		}
	}

	if expanded && slices.ContainsFunc(lines, func(line Line) bool { return asm.isInvocation(line.Text) }) {
		if asm.Verbose {
			glog.Warningf("asm: %v", ErrMacroDepth)
		}
		asm.Diagnostics = append(asm.Diagnostics, ErrMacroDepth)
	}

	return lines
}

// expandOnce performs a single expansion round.
func (asm *Assembler) expandOnce(lines []Line) (out []Line, expanded bool) {
	out = make([]Line, 0, len(lines))

	for n := 0; n < len(lines); n++ {
		line := lines[n]
		switch {
		case line.Text == OP_SKZ.String() && n+1 < len(lines) && asm.isInvocation(lines[n+1].Text):
			n++
			out = asm.invoke(out, lines[n], true)
			expanded = true
		case asm.isInvocation(line.Text):
			out = asm.invoke(out, line, false)
			expanded = true
		case isOpcode(line.Text):
			out = append(out, line)
		default:
			if name, _, ok := splitInvocation(line.Text); ok {
				asm.report(line, &ErrMacro{Macro: name, Err: ErrMacroUnknown})
			} else {
				asm.report(line, ErrInstructionInvalid)
			}
		}
	}

	return
}

// substitute binds a macro's parameters in one body line.
func substitute(body string, bind map[string]string) string {
	if isOpcode(body) {
		return body
	}

	if _, _, ok := splitInvocation(body); ok {
		// Only the argument list, never the invoked name.
		open := strings.IndexByte(body, '(')
		return body[:open+1] + replaceTokens(body[open+1:], bind)
	}

	return replaceTokens(body, bind)
}

// invoke appends the expansion of a macro invocation to out.
// When interleave is set, an SKZ separates each pair of body lines.
func (asm *Assembler) invoke(out []Line, line Line, interleave bool) []Line {
	name, args, _ := splitInvocation(line.Text)
	macro := asm.Macro[name]

	if len(args) != len(macro.Params) {
		asm.report(line, &ErrMacro{Macro: name, Err: ErrArity{Want: len(macro.Params), Got: len(args)}})
		return out
	}

	bind := make(map[string]string, len(args))
	for n, arg := range args {
		if !asm.isWord(arg) && !asm.isInvocation(arg) {
			asm.report(line, &ErrMacro{Macro: name, Err: ErrArgument(arg)})
			return out
		}
		bind[macro.Params[n]] = arg
	}

	for n, body := range macro.Lines {
		if interleave && n > 0 {
			out = append(out, Line{LineNo: line.LineNo, Text: OP_SKZ.String()})
		}
		text := substitute(body, bind)
		if asm.Verbose {
			glog.Infof("asm: %v: %v", name, text)
		}
		out = append(out, Line{LineNo: line.LineNo, Text: text})
	}

	return out
}

// link converts the expanded lines into a padded program.
func (asm *Assembler) link(lines []Line) (prog *Program) {
	prog = &Program{}

	for _, line := range lines {
		op, ok := ParseOpcode(line.Text)
		if !ok {
			asm.report(line, ErrInstructionInvalid)
			continue
		}
		prog.Opcodes = append(prog.Opcodes, op)
		prog.LineNo = append(prog.LineNo, line.LineNo)
	}

	size := len(prog.Opcodes)
	prog.Pad()
	if asm.Verbose && prog.Padding > 0 {
		glog.Infof("asm: program padded from %d to %d instructions (%d NOTs added)",
			size, len(prog.Opcodes), prog.Padding)
	}

	return
}
