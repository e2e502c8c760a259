package markup

import (
	"fmt"

	"go.uber.org/zap"
)

// State is the interpreter's typesetting state.
type State struct {
	Face       Face
	Justify    Justification
	Size       float64
	Inset      float64
	RightInset float64
	Collecting bool
}

// InitialState is the state before the first line.
func InitialState() State {
	return State{Face: FaceMain, Justify: JustifyCenter, Size: BodySize}
}

// Interpreter turns one markup document into a Program. It is single use:
// anchor ids and state belong to exactly one compilation.
type Interpreter struct {
	log   *zap.Logger
	state State
	used  bool

	prog       Program
	legacyLine int // 1-based line of the open #X
	legacySize int // lines discarded in the open block
}

// NewInterpreter creates an interpreter. A nil logger discards warnings
// from the log; they are still returned in the Program.
func NewInterpreter(log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{log: log, state: InitialState()}
}

// Interpret runs a fresh interpreter over doc.
func Interpret(log *zap.Logger, doc Document) (*Program, error) {
	return NewInterpreter(log).Run(doc)
}

// State returns the current typesetting state.
func (in *Interpreter) State() State {
	return in.state
}

// Run interprets doc in a single forward pass.
func (in *Interpreter) Run(doc Document) (*Program, error) {
	if in.used {
		return nil, ErrInterpreterUsed
	}
	in.used = true

	for i, raw := range doc.Lines() {
		in.step(i+1, ParseLine(raw))
	}

	if in.state.Collecting {
		in.warnLegacy("unterminated legacy block discarded")
		in.state.Collecting = false
	}

	prog := in.prog
	return &prog, nil
}

func (in *Interpreter) step(n int, l Line) {
	if in.state.Collecting {
		if l.Kind == LineDirective && l.Directive == LegacyEnd {
			in.closeLegacy()
			return
		}
		in.legacySize++
		return
	}

	switch l.Kind {
	case LineDirective:
		in.apply(n, l.Directive)
	case LineHeading:
		in.heading(l.Level, l.Text)
	default:
		in.text(l.Text)
	}
}

// apply executes a directive outside a legacy block.
func (in *Interpreter) apply(n int, d Directive) {
	switch d {
	case AlignLeft:
		in.state.Justify = JustifyLeft
	case AlignCenter:
		in.state.Justify = JustifyCenter
	case NewPage:
		in.emit(Op{Kind: OpPageBreak})
	case CodeFont:
		in.state.Face = FaceCode
		in.state.Justify = JustifyLeft
		in.state.Inset = CodeInset
		in.state.RightInset = CodeInset
		in.state.Size = CodeSize
	case MainFont:
		in.state.Face = FaceMain
		in.state.Justify = JustifyFull
		in.state.Inset = 0
		in.state.RightInset = 0
		in.state.Size = BodySize
	case LegacyBegin:
		in.state.Collecting = true
		in.legacyLine = n
		in.legacySize = 0
		in.emit(Op{Kind: OpLegacyBegin})
	case LegacyEnd:
		in.log.Debug("legacy block end without begin", zap.Int("line", n))
	}
}

func (in *Interpreter) closeLegacy() {
	in.state.Collecting = false
	in.emit(Op{Kind: OpLegacyEnd})
	in.warnLegacy("legacy code block skipped")
}

func (in *Interpreter) heading(level int, title string) {
	anchor := len(in.prog.Headings) + 1
	in.prog.Headings = append(in.prog.Headings, Heading{
		Anchor: anchor,
		Level:  level,
		Title:  title,
		Order:  anchor - 1,
	})

	size, justify := Heading2Size, JustifyLeft
	if level == 1 {
		size, justify = Heading1Size, JustifyCenter
	}

	in.emit(Op{Kind: OpAnchor, Anchor: anchor})
	in.emit(Op{
		Kind:    OpText,
		Text:    title,
		Size:    size,
		Justify: justify,
		Face:    in.state.Face,
		Heading: level,
		Anchor:  anchor,
	})
}

func (in *Interpreter) text(s string) {
	in.emit(Op{
		Kind:       OpText,
		Text:       s,
		Size:       in.state.Size,
		Justify:    in.state.Justify,
		Face:       in.state.Face,
		Inset:      in.state.Inset,
		RightInset: in.state.RightInset,
	})
}

func (in *Interpreter) emit(op Op) {
	in.prog.Ops = append(in.prog.Ops, op)
}

// warnLegacy reports the open legacy block. Its content is never evaluated.
func (in *Interpreter) warnLegacy(msg string) {
	in.log.Warn(msg,
		zap.Int("line", in.legacyLine),
		zap.Int("discarded", in.legacySize),
	)
	in.prog.Warnings = append(in.prog.Warnings,
		fmt.Sprintf("line %d: %s (%d lines)", in.legacyLine, msg, in.legacySize))
}
