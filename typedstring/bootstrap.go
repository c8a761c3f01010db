package typedstring

// Hint names of the bootstrap units.
const (
	MarkerHintName     = MarkerName + HintSuffix
	CapabilityHintName = CapabilityName + HintSuffix
)

const markerBody = `namespace TypedStrings
{
    [global::System.AttributeUsage(global::System.AttributeTargets.Struct, AllowMultiple = false, Inherited = false)]
    public sealed class TypedStringAttribute : global::System.Attribute
    {
        public global::System.Type Comparer { get; }

        public TypedStringAttribute(global::System.Type comparer) => Comparer = comparer;
    }
}
`

const capabilityBody = `namespace TypedStrings
{
    public interface IStaticStringComparer
    {
        public static abstract bool Equals(string x, string y);

        public static abstract int GetHashCode(string s);
    }
}
`

// Bootstrap returns the marker attribute and comparer contract units, in that
// order. They are emitted once per compilation whether or not any candidate
// exists.
func Bootstrap() []Source {
	return []Source{
		{HintName: MarkerHintName, Text: header() + markerBody},
		{HintName: CapabilityHintName, Text: header() + capabilityBody},
	}
}
