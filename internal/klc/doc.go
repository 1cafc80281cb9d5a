// Package klc reads Windows keyboard layout sources (".klc" files, as saved
// by the Microsoft Keyboard Layout Creator).
//
// A KLC file is line oriented and split into keyword-introduced sections.
// The parser keeps what a conversion needs: the layout name, one Key per
// scan code with its normal, shift, ctrl-alt and shift-ctrl-alt
// characters, and the dead key tables. Files are usually UTF-16 with a
// byte order mark; UTF-8 is accepted as well.
package klc
