package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/latticenb/internal/config"
)

// RunPlot draws a single plot from a data file and an optional config file.
func RunPlot(ctx context.Context, s *Session, dataPath, plotType, configPath string) error {
	data, err := config.ReadValue(dataPath)
	if err != nil {
		return err
	}
	cfg, err := config.ReadRenderConfig(configPath)
	if err != nil {
		return err
	}
	if err := s.Adapter.DrawPlot(ctx, data, plotType, cfg); err != nil {
		return fmt.Errorf("plot failed: %w", err)
	}
	return nil
}

// RunLattice draws a lattice grid from a data file and an optional config file.
func RunLattice(ctx context.Context, s *Session, dataPath, configPath string) error {
	data, err := config.ReadValue(dataPath)
	if err != nil {
		return err
	}
	cfg, err := config.ReadRenderConfig(configPath)
	if err != nil {
		return err
	}
	if err := s.Adapter.DrawLattice(ctx, data, cfg); err != nil {
		return fmt.Errorf("lattice failed: %w", err)
	}
	return nil
}

// RunICOMut draws an iCoMut plot. The paths are resolved by the notebook server, not here.
func RunICOMut(ctx context.Context, s *Session, dataFile, configFile string) error {
	if err := s.Adapter.PlotICOMut(ctx, dataFile, configFile); err != nil {
		return fmt.Errorf("icomut failed: %w", err)
	}
	return nil
}

// RunLoader emits the renderer module definitions.
func RunLoader(ctx context.Context, s *Session) error {
	return s.Adapter.Load(ctx)
}
