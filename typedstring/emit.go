package typedstring

import (
	"fmt"
	"strings"
	"text/template"
)

type operand int

const (
	wrapperOperand operand = iota
	stringOperand
)

// equalityOperators is the fixed catalog of == / != overloads. Each pair
// renders both operators.
var equalityOperators = [...]struct{ left, right operand }{
	{wrapperOperand, wrapperOperand},
	{stringOperand, wrapperOperand},
	{wrapperOperand, stringOperand},
}

type operatorData struct {
	Left, Right       string
	LeftRaw, RightRaw string
}

type wrapperData struct {
	Type      string
	Strategy  string
	Generator string
	Version   string
	Operators []operatorData
}

func newWrapperData(d Declaration) wrapperData {
	data := wrapperData{
		Type:      d.typeName,
		Strategy:  d.strategy,
		Generator: GeneratorName,
		Version:   Version,
	}
	side := func(op operand, param string) (typ, raw string) {
		if op == stringOperand {
			return "string", param
		}
		return d.typeName, param + ".Raw"
	}
	for _, pair := range equalityOperators {
		var od operatorData
		od.Left, od.LeftRaw = side(pair.left, "left")
		od.Right, od.RightRaw = side(pair.right, "right")
		data.Operators = append(data.Operators, od)
	}
	return data
}

// Emit renders the companion unit for d. It trusts d and cannot fail; the
// same declaration always yields the same text.
func Emit(d Declaration) Source {
	var body strings.Builder
	if err := wrapperTpl.Execute(&body, newWrapperData(d)); err != nil {
		panic(fmt.Errorf("typedstring: render %s: %w", d.typeName, err))
	}

	var sb strings.Builder
	sb.Grow(body.Len() + 256)
	sb.WriteString(header())
	if d.namespace == "" {
		sb.WriteString(body.String())
	} else {
		sb.WriteString("namespace " + d.namespace + "\n{\n")
		sb.WriteString(indent(body.String(), "    "))
		sb.WriteString("}\n")
	}
	return Source{HintName: d.HintName(), Text: sb.String()}
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(prefix)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

var wrapperTpl = template.Must(template.New("wrapper").Parse(`[global::System.CodeDom.Compiler.GeneratedCodeAttribute("{{.Generator}}", "{{.Version}}")]
partial struct {{.Type}} : global::System.IEquatable<{{.Type}}>
{
    public string Raw { get; init; }

    public override int GetHashCode() =>
        {{.Strategy}}.GetHashCode(this.Raw);

    public override bool Equals(object? other) => other switch
    {
        string s => Equals(s),
        {{.Type}} ts => Equals(ts),
        _ => false,
    };

    public bool Equals({{.Type}} other) =>
        {{.Strategy}}.Equals(this.Raw, other.Raw);

    public bool Equals(string other) =>
        {{.Strategy}}.Equals(this.Raw, other);
{{- range .Operators}}

    public static bool operator ==({{.Left}} left, {{.Right}} right) =>
        {{$.Strategy}}.Equals({{.LeftRaw}}, {{.RightRaw}});

    public static bool operator !=({{.Left}} left, {{.Right}} right) =>
        !{{$.Strategy}}.Equals({{.LeftRaw}}, {{.RightRaw}});
{{- end}}

    public static implicit operator string({{.Type}} x) => x.Raw;
}
`))
