// Package model defines the serializable content model shared by every
// stage of the reconciliation pipeline: positioned, type-tagged content
// objects and the per-page containers that hold them.
//
// The model is deliberately flat. Upstream decoders expose rich, often
// cyclic object graphs; only the four fields that matter to reconciliation
// and persistence (index, bounding box, kind tag, text content) are carried
// over, so a ContentObject never references decoder internals.
package model
