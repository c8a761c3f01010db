package typedstring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hintNames(sources []Source) []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.HintName)
	}
	return names
}

func TestGenerate_NoCandidatesYieldsBootstrapOnly(t *testing.T) {
	t.Parallel()

	sources, err := Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"TypedStringAttribute.g.cs", "IStaticStringComparer.g.cs"}, hintNames(sources))
	assert.Equal(t, Bootstrap(), sources)
}

func TestGenerate_MixedBatch(t *testing.T) {
	t.Parallel()

	nested := zipCodeCandidate()
	nested.Decl = decl(decl(ns(unit(), "Foo"), KindClass, "Outer"), KindStruct, "Inner")

	noContract := Candidate{
		Decl:       decl(ns(unit(), "Foo"), KindStruct, "Plain"),
		Attributes: []Attribute{marker(comparer("Foo", "Cmp", "IComparer"))},
	}

	sku := Candidate{
		Decl:       decl(unit(), KindStruct, "Sku"),
		Attributes: []Attribute{marker(comparer("", "Cmp", CapabilityName))},
	}

	var skipped, emitted []string
	pass := Pass{
		OnSkip: func(c Candidate) { skipped = append(skipped, c.Decl.Name()) },
		OnEmit: func(d Declaration) { emitted = append(emitted, d.TypeName()) },
	}

	sources, err := pass.Run(context.Background(), []Candidate{nested, zipCodeCandidate(), noContract, sku, zipCodeCandidate()})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TypedStringAttribute.g.cs",
		"IStaticStringComparer.g.cs",
		"ZipCode.g.cs",
		"Sku.g.cs",
	}, hintNames(sources))
	assert.Equal(t, []string{"Inner", "Plain"}, skipped)
	assert.Equal(t, []string{"ZipCode", "Sku"}, emitted)

	zip := sources[2].Text
	assert.Contains(t, zip, "namespace Foo\n{")
	assert.Contains(t, zip, "global::Foo.OrdinalIgnoreCaseComparer.Equals(")
}

func TestGenerate_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources, err := Generate(ctx, []Candidate{zipCodeCandidate()})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sources)
}

func TestBootstrap_Payload(t *testing.T) {
	t.Parallel()

	units := Bootstrap()
	require.Len(t, units, 2)

	markerUnit, contractUnit := units[0], units[1]

	assert.Equal(t, MarkerHintName, markerUnit.HintName)
	assert.True(t, IsGenerated(markerUnit.Text))
	assert.Contains(t, markerUnit.Text, "namespace TypedStrings")
	assert.Contains(t, markerUnit.Text, "public sealed class TypedStringAttribute : global::System.Attribute")
	assert.Contains(t, markerUnit.Text, "public global::System.Type Comparer { get; }")
	assert.Contains(t, markerUnit.Text, "public TypedStringAttribute(global::System.Type comparer) => Comparer = comparer;")

	assert.Equal(t, CapabilityHintName, contractUnit.HintName)
	assert.True(t, IsGenerated(contractUnit.Text))
	assert.Contains(t, contractUnit.Text, "public interface IStaticStringComparer")
	assert.Equal(t, 2, strings.Count(contractUnit.Text, "public static abstract"))
	assert.Contains(t, contractUnit.Text, "public static abstract bool Equals(string x, string y);")
	assert.Contains(t, contractUnit.Text, "public static abstract int GetHashCode(string s);")

	// Fresh slice every call; callers may not corrupt later passes.
	units[0].Text = ""
	assert.NotEmpty(t, Bootstrap()[0].Text)
}
