package gpu

// VertexFormat is the per-vertex data format of one attribute.
type VertexFormat int

const (
	FormatInvalid VertexFormat = iota
	Float
	Float2
	Float3
	Float4
	Byte4
	Byte4N
	UByte4
	UByte4N
	Short2
	Short2N
	Short4
	Short4N
)

var formatInfo = map[VertexFormat]struct {
	name       string
	components int
	size       int
}{
	Float:   {"float", 1, 4},
	Float2:  {"float2", 2, 8},
	Float3:  {"float3", 3, 12},
	Float4:  {"float4", 4, 16},
	Byte4:   {"byte4", 4, 4},
	Byte4N:  {"byte4n", 4, 4},
	UByte4:  {"ubyte4", 4, 4},
	UByte4N: {"ubyte4n", 4, 4},
	Short2:  {"short2", 2, 4},
	Short2N: {"short2n", 2, 4},
	Short4:  {"short4", 4, 8},
	Short4N: {"short4n", 4, 8},
}

// Components returns the number of components, or 0 for FormatInvalid.
func (f VertexFormat) Components() int {
	return formatInfo[f].components
}

// Size returns the size of one element in bytes, or 0 for FormatInvalid.
func (f VertexFormat) Size() int {
	return formatInfo[f].size
}

func (f VertexFormat) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "invalid"
}
