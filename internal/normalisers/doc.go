// Package normalisers converts requirement text into the embedded XHTML
// content of an attribute value. Each normaliser handles one text format.
//
// Normalisers are registered with a Registry at startup.
package normalisers
