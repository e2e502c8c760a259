package markup

// Face selects the main or the code typeface.
type Face int

const (
	FaceMain Face = iota
	FaceCode
)

func (f Face) String() string {
	if f == FaceCode {
		return "code"
	}
	return "main"
}

// Justification is the horizontal alignment of text lines.
type Justification int

const (
	JustifyLeft Justification = iota
	JustifyCenter
	JustifyFull
)

func (j Justification) String() string {
	switch j {
	case JustifyCenter:
		return "center"
	case JustifyFull:
		return "full"
	default:
		return "left"
	}
}

// Typesetting sizes in points.
const (
	BodySize     = 12.0
	CodeSize     = 10.0
	Heading1Size = 26.0
	Heading2Size = 18.0
	CodeInset    = 20.0
)

// OpKind identifies a render operation.
type OpKind int

const (
	OpText OpKind = iota
	OpPageBreak
	OpAnchor
	OpLegacyBegin
	OpLegacyEnd
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpPageBreak:
		return "page-break"
	case OpAnchor:
		return "anchor"
	case OpLegacyBegin:
		return "legacy-begin"
	case OpLegacyEnd:
		return "legacy-end"
	default:
		return "unknown"
	}
}

// Op is one render operation. Text, size, justification, face and the insets
// are set for OpText. Anchor is set for OpAnchor and for the text of a heading,
// whose level is in Heading (0 for body text). Legacy operations carry nothing.
type Op struct {
	Kind       OpKind
	Text       string
	Size       float64
	Justify    Justification
	Face       Face
	Inset      float64 // from the left margin
	RightInset float64 // from the right margin
	Heading    int
	Anchor     int
}

// Heading is a heading discovered during interpretation.
type Heading struct {
	Anchor int
	Level  int
	Title  string
	Order  int
}

// Program is the output of one interpretation.
type Program struct {
	Ops      []Op
	Headings []Heading
	Warnings []string
}
