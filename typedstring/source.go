package typedstring

import "strings"

// Generator identity stamped into every emitted unit.
const (
	GeneratorName = "TypedStrings"
	Version       = "1.0.0"
)

const (
	autoGeneratedLine = "// <auto-generated/>"
	codeGeneratedLine = "// Code generated by " + GeneratorName + " " + Version + "; DO NOT EDIT."
)

// Source is one named unit of generated C# text.
type Source struct {
	HintName string
	Text     string
}

// header is the preamble shared by every unit.
func header() string {
	return autoGeneratedLine + "\n" + codeGeneratedLine + "\n#nullable enable\n\n"
}

// IsGenerated reports whether text was produced by this generator, any
// version. Downstream tooling uses it to exclude or prune units.
func IsGenerated(text string) bool {
	if !strings.HasPrefix(text, autoGeneratedLine+"\n") {
		return false
	}
	rest := text[len(autoGeneratedLine)+1:]
	return strings.HasPrefix(rest, "// Code generated by "+GeneratorName+" ")
}
