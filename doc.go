// Package pdfmaker compiles poetry books to PDF.
//
// # Quick Start
//
// Create a compiler rooted at the private storage directory and compile a book:
//
//	c, err := pdfmaker.NewCompiler(pdfmaker.WithStorageRoot("/srv/private"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := c.Compile(ctx, pdfmaker.Book{
//	    Kind: pdfmaker.BookClassic,
//	    Poet: pdfmaker.Poet{Name: "Jane Doe", Bio: "<p>Poet.</p>", Birth: "04/12/1920"},
//	    Poems: []pdfmaker.Poem{
//	        {Title: "Dawn", Body: "Light<br>\nrises", Year: "1920-1935"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path) // pdf/classic/Poetry of Jane Doe.pdf
//
// # Compilation Pipeline
//
// A book goes through these stages:
//
//  1. Text normalization (HTML or Markdown to plain lines)
//  2. Document building: biography and poems become intermediate markup
//  3. Interpretation: a single pass over the markup emits draw operations
//     and registers every heading as an anchor
//  4. Rendering on gofpdf: cover, contents page, body with running page
//     numbers; contents page numbers are resolved when the PDF is written
//  5. Materialization under <root>/pdf/<folder>/<folder_inner>/
//
// # Intermediate Markup
//
// The markup is line oriented. These lines are directives:
//
//	#AL  align left          #AC  align center       #NP  new page
//	#C   code font           #c   main font
//	#X   legacy block start  #x   legacy block end (content discarded)
//
// A line "1<Title>" is a level-1 heading, "2<Title>" a level-2 heading.
// Every other line is text. Use Compiler.Markup to inspect the markup of a
// book and Compiler.CompileRequest to compile hand-written markup.
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	c, err := pdfmaker.NewCompiler(
//	    pdfmaker.WithStorageRoot(root),
//	    pdfmaker.WithFonts(pdfmaker.FontSettings{Dirs: []string{"/usr/share/fonts/book"}, Main: "garamond"}),
//	    pdfmaker.WithFooter(pdfmaker.Footer{Lines: []string{"Find more poetry online"}, PageNumbers: true}),
//	    pdfmaker.WithLogger(logger),
//	)
//
// A Compiler holds configuration only. Each compilation creates its own
// interpreter and backend, so one Compiler can serve concurrent calls.
//
// # Fonts
//
// Fonts are searched in the configured directories as <name>.ttf or as a
// gofpdf <name>.json definition. A missing font falls back to the built-in
// Times (body) or Courier (code) face with a logged warning.
package pdfmaker
