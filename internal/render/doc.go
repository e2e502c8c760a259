// Package render draws interpreted markup onto pages.
//
// Drawing goes through the Backend port so the page-layout library stays
// behind one seam. PDF implements it with gofpdf; rendertest.Recorder is an
// in-memory implementation for tests.
//
// Page numbers for the table of contents are not known while the contents
// page is drawn. Backends hand out a placeholder from PageRef and substitute
// the final number in Finish, once every anchor has been placed.
package render
