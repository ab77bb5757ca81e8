// Package data carries the assets compiled into the binary.
package data

import _ "embed"

// Questions is the default interview question bank, keyed by domain.
//
//go:embed questions.json
var Questions []byte
