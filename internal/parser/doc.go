// Package parser recovers structured grant proposal data from the Markdown
// application documents submitted in pull requests.
//
// Extraction is best effort: a missing marker yields a default value and no
// function in this package returns an error.
package parser
