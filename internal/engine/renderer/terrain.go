package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/engine/lighting"
	"github.com/EternalMC/world-gen/internal/engine/shader"
	"github.com/EternalMC/world-gen/internal/logger"
	"github.com/EternalMC/world-gen/internal/terrain"
)

// Fog fades distant terrain into the clear color.
type Fog struct {
	Near  float32
	Far   float32
	Color mgl32.Vec3
}

// Frame carries the per frame inputs of a terrain draw.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Camera     mgl32.Vec3
	Sun        lighting.Sun
	Fog        Fog
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	lod           int
}

// ChunkRenderer keeps one vertex array per loaded chunk.
type ChunkRenderer struct {
	program *shader.Program
	meshes  map[chunk.Pos]*gpuMesh
	log     *zap.Logger
}

// NewChunkRenderer compiles the terrain shader.
func NewChunkRenderer(log *zap.Logger) (*ChunkRenderer, error) {
	program, err := shader.NewProgram(terrainVertexShader, terrainFragmentShader,
		"uViewProj", "uLightDir", "uAmbient", "uDiffuse",
		"uCameraPos", "uFogColor", "uFogNear", "uFogFar",
	)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &ChunkRenderer{
		program: program,
		meshes:  make(map[chunk.Pos]*gpuMesh),
		log:     logger.OrNop(log),
	}, nil
}

// Upload replaces the GPU mesh at c.Pos with the mesh of c.
// An empty mesh removes whatever was there.
func (cr *ChunkRenderer) Upload(c *chunk.Chunk) {
	cr.Remove(c.Pos)
	if c.Mesh.Empty() {
		return
	}

	m := &gpuMesh{
		indexCount: int32(len(c.Mesh.Indices)),
		lod:        c.LOD,
	}
	vertices := c.Mesh.Vertices
	indices := c.Mesh.Indices
	stride := int32(unsafe.Sizeof(terrain.Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(vertices[0].Position))
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(vertices[0].Normal))
	gl.EnableVertexAttribArray(1)

	// Color (location = 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, unsafe.Offsetof(vertices[0].Color))
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	cr.meshes[c.Pos] = m
	cr.log.Debug("Chunk uploaded",
		zap.Stringer("pos", c.Pos),
		zap.Int("lod", c.LOD),
		zap.Int("triangles", c.Mesh.TriangleCount()),
	)
}

// Remove frees the GPU mesh at pos, if any.
func (cr *ChunkRenderer) Remove(pos chunk.Pos) {
	m, ok := cr.meshes[pos]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	delete(cr.meshes, pos)
}

// Has reports whether a mesh is uploaded for pos.
func (cr *ChunkRenderer) Has(pos chunk.Pos) bool {
	_, ok := cr.meshes[pos]
	return ok
}

// Len returns the number of uploaded chunks.
func (cr *ChunkRenderer) Len() int {
	return len(cr.meshes)
}

// Render draws every uploaded chunk.
func (cr *ChunkRenderer) Render(f Frame) {
	if len(cr.meshes) == 0 {
		return
	}

	cr.program.Use()
	cr.program.SetMat4("uViewProj", f.Projection.Mul4(f.View))
	cr.program.SetVec3("uLightDir", f.Sun.Direction())
	cr.program.SetVec3("uAmbient", f.Sun.Ambient)
	cr.program.SetVec3("uDiffuse", f.Sun.Diffuse)
	cr.program.SetVec3("uCameraPos", f.Camera)
	cr.program.SetVec3("uFogColor", f.Fog.Color)
	cr.program.SetFloat("uFogNear", f.Fog.Near)
	cr.program.SetFloat("uFogFar", f.Fog.Far)

	for _, m := range cr.meshes {
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// Close frees all meshes and the shader.
func (cr *ChunkRenderer) Close() {
	for pos := range cr.meshes {
		cr.Remove(pos)
	}
	cr.program.Delete()
}
