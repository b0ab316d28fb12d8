package app

import (
	"context"
	"fmt"
	"os"

	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/service"
)

// VersionsUseCase orchestrates version manifest generation and persistence
type VersionsUseCase struct {
	generator domain.VersionGenerator
}

// NewVersionsUseCase creates a new versions use case
func NewVersionsUseCase(generator domain.VersionGenerator) *VersionsUseCase {
	return &VersionsUseCase{generator: generator}
}

// Execute generates the manifest and writes it to the configured output
func (uc *VersionsUseCase) Execute(ctx context.Context, req domain.VersionsRequest) (*domain.VersionsResponse, error) {
	response, err := uc.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		if err := service.WriteJSON(req.OutputWriter, response.Manifest); err != nil {
			return nil, domain.NewOutputError("failed to write version manifest", err)
		}
	}

	if req.OutputPath != "" {
		f, err := os.Create(req.OutputPath)
		if err != nil {
			return nil, domain.NewOutputError(fmt.Sprintf("failed to create manifest %s", req.OutputPath), err)
		}
		defer f.Close()

		if err := service.WriteJSON(f, response.Manifest); err != nil {
			return nil, domain.NewOutputError(fmt.Sprintf("failed to write manifest %s", req.OutputPath), err)
		}
	}

	return response, nil
}
