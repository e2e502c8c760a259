package markup

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// lineGen produces markup lines from every line class.
var lineGen = gen.OneConstOf(
	"#AL", "#AC", "#NP", "#C", "#c",
	"1<Name>", "2<Poem>", "5<Other>",
	"", "verse", "#note", "1<open",
)

func TestInterpreterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("N headings get anchors 1..N in order", prop.ForAll(
		func(ls []string) bool {
			doc := NewDocument(strings.Join(ls, "\n"))
			prog, err := Interpret(nil, doc)
			if err != nil {
				return false
			}
			if len(prog.Headings) != countLines(doc, LineHeading, 0) {
				return false
			}
			for i, h := range prog.Headings {
				if h.Anchor != i+1 || h.Order != i {
					return false
				}
			}
			return true
		},
		gen.SliceOf(lineGen),
	))

	properties.Property("justification follows the latest alignment directive", prop.ForAll(
		func(ls []string) bool {
			in := NewInterpreter(nil)
			if _, err := in.Run(NewDocument(strings.Join(ls, "\n"))); err != nil {
				return false
			}
			want := JustifyCenter
			for _, l := range ls {
				switch l {
				case "#AL", "#C":
					want = JustifyLeft
				case "#AC":
					want = JustifyCenter
				case "#c":
					want = JustifyFull
				}
			}
			return in.State().Justify == want
		},
		gen.SliceOf(lineGen),
	))

	properties.Property("nothing inside a legacy block is emitted", prop.ForAll(
		func(before, inside, after []string) bool {
			plain := func(ls []string) []string {
				out := make([]string, 0, len(ls))
				for _, l := range ls {
					if l != "#x" {
						out = append(out, l)
					}
				}
				return out
			}
			// Fixed first and last lines keep both documents non-empty.
			head := append([]string{"start"}, before...)
			tail := append(append([]string{}, after...), "end")

			doc := append(append([]string{}, head...), "#X")
			doc = append(append(doc, plain(inside)...), "#x")
			doc = append(doc, tail...)

			withBlock, err := Interpret(nil, NewDocument(strings.Join(doc, "\n")))
			if err != nil {
				return false
			}
			without, err := Interpret(nil, NewDocument(strings.Join(append(head, tail...), "\n")))
			if err != nil {
				return false
			}

			var got []Op
			for _, op := range withBlock.Ops {
				if op.Kind != OpLegacyBegin && op.Kind != OpLegacyEnd {
					got = append(got, op)
				}
			}
			if len(got) != len(without.Ops) {
				return false
			}
			for i := range got {
				if got[i] != without.Ops[i] {
					return false
				}
			}
			return len(withBlock.Warnings) == 1
		},
		gen.SliceOf(lineGen),
		gen.SliceOf(lineGen),
		gen.SliceOf(lineGen),
	))

	properties.TestingRun(t)
}
