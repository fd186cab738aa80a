// Package section implements the modal editor for free-text dashboard
// sections.
//
// Opening a section yields a Session that moves through an explicit state
// machine:
//
//	closed --Open--> open --SetText--> dirty
//	open|dirty --Save|Cancel--> closed
//
// Only one session is active per Editor; opening another section closes the
// previous session without saving it.
//
// Section texts are stored as structured records in a single map under the
// "sections" key. Plain-text values written under "edit_<id>" by the browser
// dashboard are read as a fallback and never written.
package section
