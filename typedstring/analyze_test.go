package typedstring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var declOpts = cmp.AllowUnexported(Declaration{})

func TestAnalyze_ZipCodeScenario(t *testing.T) {
	t.Parallel()

	got, ok := Analyze(zipCodeCandidate())
	require.True(t, ok)

	want := Declaration{
		namespace: "Foo",
		typeName:  "ZipCode",
		strategy:  "global::Foo.OrdinalIgnoreCaseComparer",
	}
	if diff := cmp.Diff(want, got, declOpts); diff != "" {
		t.Fatalf("declaration mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ZipCode.g.cs", got.HintName())
}

func TestAnalyze_Accepts(t *testing.T) {
	t.Parallel()

	outer := &TypeSymbol{Name: "Comparers", Namespace: NewNamespaceSymbol("Lib")}

	testCases := []struct {
		name      string
		candidate Candidate
		want      Declaration
	}{
		{
			name: "top level struct has no namespace",
			candidate: Candidate{
				Decl:       decl(unit(), KindStruct, "Code"),
				Attributes: []Attribute{marker(comparer("Foo", "Cmp", CapabilityName))},
			},
			want: Declaration{typeName: "Code", strategy: "global::Foo.Cmp"},
		},
		{
			name: "struct without any parent",
			candidate: Candidate{
				Decl:       &node{kind: KindStruct, name: "Code"},
				Attributes: []Attribute{marker(comparer("Foo", "Cmp", CapabilityName))},
			},
			want: Declaration{typeName: "Code", strategy: "global::Foo.Cmp"},
		},
		{
			name: "comparer in global namespace",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "A", "B"), KindStruct, "Code"),
				Attributes: []Attribute{marker(comparer("", "Cmp", CapabilityName))},
			},
			want: Declaration{namespace: "A.B", typeName: "Code", strategy: "global::Cmp"},
		},
		{
			name: "nested comparer keeps containing type",
			candidate: Candidate{
				Decl: decl(ns(unit(), "App"), KindStruct, "Code"),
				Attributes: []Attribute{marker(&TypeSymbol{
					Name:       "Cmp",
					Containing: outer,
					Interfaces: []string{CapabilityName},
				})},
			},
			want: Declaration{namespace: "App", typeName: "Code", strategy: "global::Lib.Comparers.Cmp"},
		},
		{
			name: "unrelated interface with the contract name is accepted",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "Code"),
				Attributes: []Attribute{marker(comparer("Foo", "Cmp", "Elsewhere.IStaticStringComparer"))},
			},
			want: Declaration{namespace: "Foo", typeName: "Code", strategy: "global::Foo.Cmp"},
		},
		{
			name: "first valid marker wins",
			candidate: Candidate{
				Decl: decl(ns(unit(), "Foo"), KindStruct, "Code"),
				Attributes: []Attribute{
					{Class: &TypeSymbol{Name: "ObsoleteAttribute", Namespace: NewNamespaceSymbol("System")}},
					marker(comparer("Foo", "NotAComparer", "IDisposable")),
					marker(comparer("Foo", "First", CapabilityName)),
					marker(comparer("Foo", "Second", CapabilityName)),
				},
			},
			want: Declaration{namespace: "Foo", typeName: "Code", strategy: "global::Foo.First"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Analyze(tc.candidate)
			require.True(t, ok)
			if diff := cmp.Diff(tc.want, got, declOpts); diff != "" {
				t.Fatalf("declaration mismatch (-want +got):\n%s", diff)
			}
			assert.NotEmpty(t, got.Strategy())
		})
	}
}

func TestAnalyze_Rejects(t *testing.T) {
	t.Parallel()

	valid := comparer("Foo", "Cmp", CapabilityName)

	testCases := []struct {
		name      string
		candidate Candidate
	}{
		{
			name:      "no declaration",
			candidate: Candidate{Attributes: []Attribute{marker(valid)}},
		},
		{
			name: "nested inside another type",
			candidate: Candidate{
				Decl:       decl(decl(ns(unit(), "Foo"), KindClass, "Outer"), KindStruct, "ZipCode"),
				Attributes: []Attribute{marker(valid)},
			},
		},
		{
			name: "class instead of struct",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindClass, "ZipCode"),
				Attributes: []Attribute{marker(valid)},
			},
		},
		{
			name: "no attributes",
			candidate: Candidate{
				Decl: decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
			},
		},
		{
			name: "missing constructor argument",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{marker()},
			},
		},
		{
			name: "two constructor arguments",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{marker(valid, valid)},
			},
		},
		{
			name: "argument is not a type",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{{Class: markerClass(), Args: []Argument{{}}}},
			},
		},
		{
			name: "comparer lacks the contract",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{marker(comparer("Foo", "Cmp", "IEqualityComparer<string>", "IStaticStringComparerEx"))},
			},
		},
		{
			name: "marker from another namespace",
			candidate: Candidate{
				Decl: decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{{
					Class: &TypeSymbol{Name: MarkerName, Namespace: NewNamespaceSymbol("Other")},
					Args:  []Argument{{Type: valid}},
				}},
			},
		},
		{
			name: "unresolved attribute class",
			candidate: Candidate{
				Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
				Attributes: []Attribute{{Args: []Argument{{Type: valid}}}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Analyze(tc.candidate)
			assert.False(t, ok)
			assert.Equal(t, Declaration{}, got)
		})
	}
}

func TestTypeSymbol_Implements(t *testing.T) {
	t.Parallel()

	var nilSym *TypeSymbol
	assert.False(t, nilSym.Implements(CapabilityName))

	sym := comparer("", "Cmp", "global::TypedStrings.IStaticStringComparer", "IEquatable<string>")
	assert.True(t, sym.Implements(CapabilityName))
	assert.True(t, sym.Implements("IEquatable"))
	assert.False(t, sym.Implements("IComparable"))
}

func TestSimpleName(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"IFoo":                    "IFoo",
		"A.B.IFoo":                "IFoo",
		"global::A.IFoo":          "IFoo",
		"global::IFoo":            "IFoo",
		"IFoo<string>":            "IFoo",
		"A.IFoo<System.String>":   "IFoo",
		" IStaticStringComparer ": "IStaticStringComparer",
	}
	for in, want := range testCases {
		assert.Equal(t, want, simpleName(in), in)
	}
}
