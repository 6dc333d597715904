package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type pipelineFile struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// applyPipelineFile overlays non-zero values from a YAML file of the form
//
//	pipeline:
//	  chunk_size: 800
//	  top_k: 6
//	  query_timeout: 90s
func applyPipelineFile(dst *PipelineConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pipeline config: %w", err)
	}

	var file pipelineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse pipeline config: %w", err)
	}

	src := file.Pipeline
	if src.ChunkSize != 0 {
		dst.ChunkSize = src.ChunkSize
	}
	if src.ChunkOverlap != 0 {
		dst.ChunkOverlap = src.ChunkOverlap
	}
	if src.TopK != 0 {
		dst.TopK = src.TopK
	}
	if src.QueryTimeout != 0 {
		dst.QueryTimeout = src.QueryTimeout
	}
	if src.IndexBackend != "" {
		dst.IndexBackend = src.IndexBackend
	}
	if src.StructuredTable != "" {
		dst.StructuredTable = src.StructuredTable
	}
	if src.MaxRows != 0 {
		dst.MaxRows = src.MaxRows
	}
	return nil
}
