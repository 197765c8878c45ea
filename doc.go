// Package sft implements a tile-based software rasterizer.
//
// # Overview
//
// A Rasterizer owns a render pass (color, depth and stencil attachments)
// and rasterizes indexed or non-indexed triangle lists against it. Each
// draw call runs a fixed function geometry front end per triangle — vertex
// shading, perspective divide to NDC, viewport mapping, face culling,
// bounding box and scissor clipping, sample-point culling — then appends
// the surviving primitive to an R-tree-backed tiler. Finish dispatches
// every tile to the fragment back end in parallel across a worker pool:
// per-sample coverage and depth/stencil testing, shade-once-blend-many
// fragment shading, and Porter-Duff blending into the color attachment,
// followed by resolving any multisampled color attachment into its
// resolve target.
//
// # Quick Start
//
//	r, err := sft.New(texture.Size{Width: 512, Height: 512}, 1)
//	if err != nil {
//		// handle err
//	}
//	defer r.Close()
//
//	r.Clear()
//	pipeline := &sft.Pipeline{Shader: myShader, Winding: sft.WindingCounterClockwise}
//	r.Draw(pipeline, resources, vertexCount, 0)
//	r.Finish()
//
// # Shaders
//
// Callers implement the Shader interface to supply their own vertex and
// fragment programs; attribute, uniform, varying and image access all go
// through the generic LoadAttribute/LoadVertexUniform/LoadFragmentVarying/
// LoadFragmentImage helpers, which read from a DispatchResources' raw
// buffer views rather than requiring a fixed vertex layout.
//
// # Coordinate System
//
// Clip space follows the usual convention (perspective divide by w to
// reach NDC in [-1, 1]); the viewport then maps NDC to texel coordinates
// with the origin at the top-left of the color attachment, Y increasing
// downward.
package sft
