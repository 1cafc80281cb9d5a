// Package deadkey decides whether a character produced by a Windows layout
// is an ordinary character or stands for an X11 dead key.
//
// Windows layouts mark dead keys by the character they show (for example
// "ˇ" for the caron), while X11 names them ("dead_caron"). Only the
// operator knows the mapping, so the interactive Prompter asks for every
// output slot holding a trigger character. Conversions receive the
// decision as a Classifier, which lets tests script the answers.
package deadkey
