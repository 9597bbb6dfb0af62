package shaders

import (
	"fmt"
	"strings"
	"testing"
)

func TestMeshShaders(t *testing.T) {
	for name, src := range map[string]string{
		"vertex":   MeshVertexShader,
		"fragment": MeshFragmentShader,
	} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s shader: missing #version 410 core header", name)
		}
	}

	locations := map[int]string{
		LocationPosition: "aPosition",
		LocationNormal:   "aNormal",
		LocationTexcoord: "aTexcoord",
	}
	for loc, attr := range locations {
		want := fmt.Sprintf("layout (location = %d) in", loc)
		line := ""
		for _, l := range strings.Split(MeshVertexShader, "\n") {
			if strings.Contains(l, attr+";") {
				line = l
				break
			}
		}
		if !strings.HasPrefix(line, want) {
			t.Errorf("attribute %s: got %q, want location %d", attr, line, loc)
		}
	}

	if !strings.Contains(MeshVertexShader, "uniform mat4 "+MVPUniform+";") {
		t.Errorf("vertex shader does not declare %s", MVPUniform)
	}
}
