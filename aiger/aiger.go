// Copyright 2018 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aiger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/z"
)

// Errors related to IO and formatting.
var (
	PrematureEOF       = errors.New("premature EOF")
	ReadError          = errors.New("read error")
	UnexpectedChar     = errors.New("unexpected char")
	BadHeader          = errors.New("bad header")
	BinaryMismatch     = errors.New("binary mismatch")
	LitOOB             = errors.New("literal out of bounds")
	BadDeltaEncoding   = errors.New("bad delta encoding")
	InvalidIndex       = errors.New("invalid index")
	InvalidName        = errors.New("invalid symbol name")
	SignedInput        = errors.New("input is negated")
	SignedAnd          = errors.New("and gate def is negated")
	NonCombinational   = errors.New("file declares latches, bad-states, constraints, justice or fairness properties, which this package does not support")
	CombLoop           = errors.New("combinational logic has a loop")
	AndMultiplyDefined = errors.New("and gate multiply defined")
	UndefinedLit       = errors.New("literal not defined")
)

// T pairs a combinational circuit with the input/output names carried in an
// aiger file's symbol table.
type T struct {
	C       *logic.C
	Inputs  []z.Lit
	Outputs []z.Lit

	inNames  map[int]string
	outNames map[int]string
}

// MakeFor wraps c for aiger I/O.  Inputs and outputs are read directly from
// c, in creation order: unlike the sequential *logic.S this package's
// teacher wrapped, *logic.C already tracks its own primary outputs, so
// there is no separate output list to pass in.
func MakeFor(c *logic.C) *T {
	t := &T{C: c, inNames: make(map[int]string), outNames: make(map[int]string)}
	for _, i := range c.InPos(nil) {
		t.Inputs = append(t.Inputs, c.At(i))
	}
	t.Outputs = append(t.Outputs, c.Outputs()...)
	return t
}

// Make creates an empty combinational circuit with initial capacity hint
// capHint, wrapped for aiger I/O.
func Make(capHint int) *T {
	return MakeFor(logic.NewCCap(capHint))
}

// NameInput names the index'th input.  NameInput returns a non-nil error if
// index is out of bounds or nm contains a newline.
func (t *T) NameInput(index int, nm string) error {
	if index < 0 || index >= len(t.Inputs) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	t.inNames[index] = nm
	return nil
}

// InputName gives the name of the index'th input, if any.
func (t *T) InputName(index int) (string, bool) {
	nm, found := t.inNames[index]
	return nm, found
}

// NameOutput names the index'th output.  NameOutput returns a non-nil error
// if index is out of bounds or nm contains a newline.
func (t *T) NameOutput(index int, nm string) error {
	if index < 0 || index >= len(t.Outputs) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	t.outNames[index] = nm
	return nil
}

// OutputName gives the name of the index'th output, if any.
func (t *T) OutputName(index int) (string, bool) {
	nm, found := t.outNames[index]
	return nm, found
}

// WriteAscii writes an ASCII aiger file (version 1.9, combinational-only)
// for t to w.
func (t *T) WriteAscii(w io.Writer) error {
	reach := reachable(t.C, t.Outputs)
	hdr := t.header(false, reach)
	bw := bufio.NewWriter(w)
	hdr.write(bw)
	for _, m := range t.Inputs {
		writeLit(bw, m, t.C.T)
		bw.WriteString("\n")
	}
	for _, m := range t.Outputs {
		writeLit(bw, m, t.C.T)
		bw.WriteString("\n")
	}
	t.C.ForeachGate(func(n z.Lit) {
		if !reach[n.Var()] {
			return
		}
		writeLit(bw, n, t.C.T)
		bw.WriteString(" ")
		a, b := t.C.Ins(n)
		writeLit(bw, a, t.C.T)
		bw.WriteString(" ")
		writeLit(bw, b, t.C.T)
		bw.WriteString("\n")
	})
	t.writeSymtab(bw)
	writeComment(bw)
	return bw.Flush()
}

// WriteBinary writes a binary aiger file (version 1.9, combinational-only)
// for t to w.
func (t *T) WriteBinary(w io.Writer) error {
	reach := reachable(t.C, t.Outputs)
	hdr := t.header(true, reach)
	bw := bufio.NewWriter(w)
	hdr.write(bw)

	// Binary aiger packs ids const(0) < inputs < ands, so inputs get a
	// contiguous id range before any and gate, even though *logic.C may
	// have interleaved their creation.
	idMap := make([]uint, t.C.Len())
	id := uint(2)
	for _, m := range t.Inputs {
		idMap[m.Var()] = id
		id += 2
	}
	// ForeachGate already visits gates in ascending, topological order
	// (logic.C guarantees a node's fanins have a smaller index), so a
	// single filtered pass assigns and-gate ids without a separate DFS.
	t.C.ForeachGate(func(n z.Lit) {
		if !reach[n.Var()] {
			return
		}
		idMap[n.Var()] = id
		id += 2
	})

	forLit := func(m z.Lit) uint {
		a := idMap[m.Var()]
		if a == 0 || m.IsPos() {
			return a
		}
		return a | 1
	}
	for _, m := range t.Outputs {
		bw.WriteString(fmt.Sprintf("%d\n", forLit(m)))
	}
	t.C.ForeachGate(func(n z.Lit) {
		if !reach[n.Var()] {
			return
		}
		a, b := t.C.Ins(n)
		mc0 := forLit(a)
		mc1 := forLit(b)
		if mc0 < mc1 { // aiger wants c0 >= c1 under the remapped ids
			mc0, mc1 = mc1, mc0
		}
		me := forLit(n)
		delta0 := me - mc0
		delta1 := mc0 - mc1
		write7(bw, delta0)
		write7(bw, delta1)
	})
	t.writeSymtab(bw)
	writeComment(bw)
	return bw.Flush()
}

func (t *T) writeSymtab(w *bufio.Writer) error {
	for i, nm := range t.inNames {
		if _, err := w.WriteString(fmt.Sprintf("i%d %s\n", i, nm)); err != nil {
			return err
		}
	}
	for i, nm := range t.outNames {
		if _, err := w.WriteString(fmt.Sprintf("o%d %s\n", i, nm)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer) {
	w.WriteString("c\naiger file version 1.9 created by airw\n")
}

// reachable marks every node (const, input, or and gate) that some output
// transitively depends on, walking fanin edges from the outputs with an
// explicit stack: after SubstituteNode a gate's fanins may have a larger
// index than the gate, so an index-order scan would not suffice.
func reachable(c *logic.C, outs []z.Lit) []bool {
	r := make([]bool, c.Len())
	r[z.Var(1)] = true
	stack := make([]z.Var, 0, len(outs))
	for _, o := range outs {
		stack = append(stack, o.Var())
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r[v] {
			continue
		}
		r[v] = true
		if m := c.At(int(v)); c.IsAndGate(m) {
			a, b := c.Ins(m)
			stack = append(stack, a.Var(), b.Var())
		}
	}
	return r
}

// ReadAscii reads an ASCII aiger file (version 1.9).  ReadAscii rejects any
// file declaring latches, bad-states, constraints, justice or fairness
// properties with NonCombinational: this package only supports the
// combinational subset consumed by the rewriter.
func ReadAscii(r io.Reader) (*T, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if hdr.Binary {
		return nil, BinaryMismatch
	}
	if err := hdr.checkCombinational(); err != nil {
		return nil, err
	}
	t := Make(int(hdr.Max + 1))
	rdr := newAigerReader(t, hdr)
	if err := rdr.readAsciiInputs(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.readOutputs(hdr.Out, hdr.Max, br); err != nil {
		return nil, err
	}
	if err := rdr.readAsciiAnds(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.commit(); err != nil {
		return nil, err
	}
	if err := rdr.readSymsAndComments(br); err != nil {
		return nil, err
	}
	return rdr.T, nil
}

// ReadBinary reads a binary aiger file (version 1.9), combinational-only;
// see ReadAscii.
func ReadBinary(r io.Reader) (*T, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if !hdr.Binary {
		return nil, BinaryMismatch
	}
	if err := hdr.checkCombinational(); err != nil {
		return nil, err
	}
	t := Make(int(hdr.Max + 1))
	rdr := newAigerReader(t, hdr)
	var i uint
	for i = 0; i < hdr.In; i++ {
		m := rdr.C.NewIn()
		rdr.mapLit((i+1)*2, m)
		rdr.Inputs = append(rdr.Inputs, m)
	}
	if err := rdr.readOutputs(hdr.Out, hdr.Max, br); err != nil {
		return nil, err
	}
	if err := rdr.readBinaryAnds(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.commit(); err != nil {
		return nil, err
	}
	if err := rdr.readSymsAndComments(br); err != nil {
		return nil, err
	}
	return rdr.T, nil
}

type aigAnd struct {
	children [2]uint
	defined  bool
	mapped   bool
	dfsColor uint8
}

type aigerReader struct {
	*T
	AigInputs  []uint
	AigOutputs []uint
	varMap     []z.Var
	AigAnds    []aigAnd
}

func newAigerReader(t *T, hdr *aigerHeader) *aigerReader {
	r := &aigerReader{T: t, varMap: make([]z.Var, hdr.Max+1)}
	r.varMap[0] = t.C.F.Var()
	return r
}

func (r *aigerReader) mapLit(aigerLit uint, m z.Lit) {
	r.varMap[int(aigerLit>>1)] = m.Var()
}

func (r *aigerReader) litFor(aigerLit uint) z.Lit {
	v := r.varMap[aigerLit>>1]
	if v == 0 {
		return z.LitNull
	}
	if aigerLit&1 != 0 {
		return v.Pos().Not()
	}
	return v.Pos()
}

func (r *aigerReader) commit() error {
	for _, u := range r.AigOutputs {
		m := r.litFor(u)
		if m == z.LitNull {
			return UndefinedLit
		}
		r.T.Outputs = append(r.T.Outputs, m)
		r.T.C.AddOutput(m)
	}
	return nil
}

func (r *aigerReader) readAsciiInputs(hdr *aigerHeader, br *bufio.Reader) error {
	var i uint
	for i = 0; i < hdr.In; i++ {
		in, err := readUint(br)
		if err != nil {
			return err
		}
		if in > hdr.Max*2+1 {
			return LitOOB
		}
		if in&1 != 0 {
			return SignedInput
		}
		m := r.C.NewIn()
		r.Inputs = append(r.Inputs, m)
		r.mapLit(in, m)
		r.AigInputs = append(r.AigInputs, in)
		if err := readNL(br); err != nil {
			return err
		}
	}
	return nil
}

func (r *aigerReader) readOutputs(nOut, max uint, br *bufio.Reader) error {
	r.AigOutputs = make([]uint, 0, nOut)
	var i uint
	for i = 0; i < nOut; i++ {
		u, err := readUint(br)
		if err != nil {
			return err
		}
		if u > 2*max+1 {
			return LitOOB
		}
		r.AigOutputs = append(r.AigOutputs, u)
		if err := readNL(br); err != nil {
			return err
		}
	}
	return nil
}

func (r *aigerReader) readBinaryAnds(hdr *aigerHeader, br *bufio.Reader) error {
	id := (hdr.In + 1) * 2
	var i uint
	for i = 0; i < hdr.And; i++ {
		delta0, err := read7(br)
		if err != nil {
			return err
		}
		if delta0 > id {
			return BadDeltaEncoding
		}
		c0 := id - delta0
		delta1, err := read7(br)
		if err != nil {
			return err
		}
		if delta1 > c0 {
			return BadDeltaEncoding
		}
		c1 := c0 - delta1
		m := r.C.And(r.litFor(c1), r.litFor(c0))
		r.mapLit(id, m)
		id += 2
	}
	return nil
}

func (r *aigerReader) readAsciiAnds(hdr *aigerHeader, br *bufio.Reader) error {
	r.AigAnds = make([]aigAnd, hdr.Max+1)
	var i uint
	for i = 0; i < hdr.And; i++ {
		g, err := readUint(br)
		if err != nil {
			return err
		}
		if g > hdr.Max*2+1 {
			return LitOOB
		}
		if g&1 != 0 {
			return SignedAnd
		}
		if err := expectByte(br, ' '); err != nil {
			return err
		}
		c0, err := readUint(br)
		if err != nil {
			return err
		}
		if c0 > hdr.Max*2+1 {
			return LitOOB
		}
		if err := expectByte(br, ' '); err != nil {
			return err
		}
		c1, err := readUint(br)
		if err != nil {
			return err
		}
		if c1 > hdr.Max*2+1 {
			return LitOOB
		}
		if err := readNL(br); err != nil {
			return err
		}
		aa := &r.AigAnds[g>>1]
		if aa.defined {
			return AndMultiplyDefined
		}
		aa.defined = true
		aa.children[0] = c0
		aa.children[1] = c1
	}
	return r.mapAnds()
}

func (r *aigerReader) mapAnds() error {
	for _, m := range r.AigInputs {
		ag := &r.AigAnds[m>>1]
		ag.defined = true
		ag.mapped = true
	}
	for i := 0; i < len(r.AigAnds); i++ {
		ag := &r.AigAnds[i]
		if ag.defined && !ag.mapped {
			if err := r.mapAndsRec(ag, uint(i*2)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *aigerReader) mapAndsRec(ag *aigAnd, aig uint) error {
	switch ag.dfsColor {
	case 0:
		ag.dfsColor = 1
		c0, c1 := ag.children[0], ag.children[1]
		ag0 := &r.AigAnds[c0>>1]
		if !ag0.defined {
			return UndefinedLit
		}
		if !ag0.mapped {
			if err := r.mapAndsRec(ag0, c0); err != nil {
				return err
			}
		}
		m := r.litFor(c0)

		ag1 := &r.AigAnds[c1>>1]
		if !ag1.defined {
			return UndefinedLit
		}
		if !ag1.mapped {
			if err := r.mapAndsRec(ag1, c1); err != nil {
				return err
			}
		}
		n := r.litFor(c1)
		r.mapLit(aig, r.C.And(m, n))
		ag.dfsColor = 2
		ag.mapped = true
	case 1:
		return CombLoop
	case 2:
	default:
		panic("unknown dfs color")
	}
	return nil
}

func (r *aigerReader) readSymsAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch b {
		case 'i', 'o':
			index, err := readUint(br)
			if err != nil {
				return err
			}
			if err := expectByte(br, ' '); err != nil {
				return err
			}
			bytes, err := br.ReadBytes('\n')
			if err != nil {
				return err
			}
			nm := string(bytes[:len(bytes)-1])
			if b == 'i' {
				r.inNames[int(index)] = nm
			} else {
				r.outNames[int(index)] = nm
			}
		case 'c':
			_, err := io.ReadAll(br)
			return err
		default:
			return UnexpectedChar
		}
	}
}

// aigerHeader is the 1.9 header "aag|aig M I L O A B C J F"; L, B, C, J, F
// are always 0 for the combinational circuits this package reads and
// writes, and NonCombinational is returned if a read header says otherwise.
type aigerHeader struct {
	Binary bool
	Max        uint
	In         uint
	Latch      uint
	Out        uint
	And        uint
	Bad        uint
	Constraint uint
	Justice    uint
	Fair       uint
}

func (h *aigerHeader) checkCombinational() error {
	if h.Latch != 0 || h.Bad != 0 || h.Constraint != 0 || h.Justice != 0 || h.Fair != 0 {
		return NonCombinational
	}
	return nil
}

func (t *T) header(binary bool, reach []bool) *aigerHeader {
	var nAnd uint
	t.C.ForeachGate(func(n z.Lit) {
		if reach[n.Var()] {
			nAnd++
		}
	})
	h := &aigerHeader{
		Binary: binary,
		In:     uint(len(t.Inputs)),
		Out:    uint(len(t.Outputs)),
		And:    nAnd,
	}
	h.Max = h.In + h.And
	if !binary {
		// ASCII literals keep *logic.C's own var numbering (see writeLit),
		// which also counts unreachable gates, so M covers the highest var.
		h.Max = uint(t.C.Len() - 2)
	}
	return h
}

func (h *aigerHeader) write(w *bufio.Writer) {
	if h.Binary {
		w.WriteString("aig ")
	} else {
		w.WriteString("aag ")
	}
	w.WriteString(fmt.Sprintf("%d %d %d %d %d %d %d %d %d\n",
		h.Max, h.In, h.Latch, h.Out, h.And, h.Bad, h.Constraint, h.Justice, h.Fair))
}

func readHeader(r *bufio.Reader) (*aigerHeader, error) {
	result := &aigerHeader{}
	buf := make([]byte, 0, 3)
	buf, err := readNonWS(r, buf)
	if err != nil {
		return nil, err
	}
	switch string(buf) {
	case "aag":
		result.Binary = false
	case "aig":
		result.Binary = true
	default:
		return nil, BadHeader
	}
	wantSpace := true
	i := 0
	var counts [9]uint
	for {
		if !wantSpace {
			if i > 8 {
				return nil, BadHeader
			}
			counts[i], err = readUint(r)
			i++
			if err != nil {
				return nil, err
			}
			wantSpace = true
			continue
		}
		b, err := r.ReadByte()
		if err == io.EOF {
			return nil, PrematureEOF
		}
		if b == '\n' {
			if i < 5 {
				return nil, BadHeader
			}
			break
		}
		if b != ' ' {
			return nil, BadHeader
		}
		wantSpace = false
	}
	result.Max = counts[0]
	result.In = counts[1]
	result.Latch = counts[2]
	result.Out = counts[3]
	result.And = counts[4]
	result.Bad = counts[5]
	result.Constraint = counts[6]
	result.Justice = counts[7]
	result.Fair = counts[8]
	return result, nil
}

func expectByte(r *bufio.Reader, want byte) error {
	b, err := r.ReadByte()
	if err == io.EOF {
		return PrematureEOF
	}
	if err != nil {
		return err
	}
	if b != want {
		return UnexpectedChar
	}
	return nil
}

func readNL(r *bufio.Reader) error {
	return expectByte(r, '\n')
}

func readNonWS(r *bufio.Reader, buf []byte) ([]byte, error) {
	buf = buf[:0]
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return buf, err
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			r.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	return buf, nil
}

func readUint(r *bufio.Reader) (uint, error) {
	var result uint
	first := true
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			if first {
				return 0, PrematureEOF
			}
			break
		}
		if err != nil {
			return 0, err
		}
		if b >= '0' && b <= '9' {
			result *= 10
			result += uint(b - '0')
			first = false
			continue
		}
		r.UnreadByte()
		break
	}
	if first {
		return 0, UnexpectedChar
	}
	return result, nil
}

// writeLit writes m in aiger literal form.  *logic.C's Lit already packs
// (var, complement) the same way aiger does; the only adjustment is the
// var offset, since airw reserves var 1 for the constant where aiger
// reserves var 0.
func writeLit(w *bufio.Writer, m, t z.Lit) error {
	if m == t {
		_, err := w.WriteString("0")
		return err
	}
	if m == t.Not() {
		_, err := w.WriteString("1")
		return err
	}
	u := uint(m) - 2
	_, err := w.WriteString(fmt.Sprintf("%d", u))
	return err
}

func write7(w *bufio.Writer, val uint) error {
	for val != 0 {
		b := byte(val & 0x7f)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

func read7(r *bufio.Reader) (uint, error) {
	var result uint
	var i uint
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return 0, PrematureEOF
		}
		if err != nil {
			return 0, err
		}
		result |= (uint(b) & 0x7f) << (7 * i)
		i++
		if b&0x80 == 0 {
			break
		}
	}
	return result, nil
}
