package reader

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/pdf2xlsx/model"
)

// ReadMetadata reads document-level metadata with pdfcpu. It runs a full
// structural parse of the file, independently of the content reader, and so
// also serves as a validity check for files the content reader rejects.
func ReadMetadata(filename string) (model.Metadata, error) {
	ctx, err := api.ReadContextFile(filename)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to read PDF context: %w", err)
	}

	return model.Metadata{
		Title:     ctx.Title,
		Author:    ctx.Author,
		Creator:   ctx.Creator,
		Producer:  ctx.Producer,
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}, nil
}
