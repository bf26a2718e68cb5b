package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/padd/pkg/config"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/overlay"
)

// BuildLayers maps settings to overlay layers. The max width is applied once,
// by the padded grid; the column overlay receives the already limited width.
// Settings are expected to be validated.
func BuildLayers(s config.Settings, logger *log.Logger) (overlay.Layers, error) {
	ctx := s.Context()

	cfg, err := s.GridConfig()
	if err != nil {
		return overlay.Layers{}, err
	}
	align, err := grid.ParseAlign(s.Align)
	if err != nil {
		return overlay.Layers{}, err
	}
	xalign := align
	if s.XGrid.Align != "" {
		if xalign, err = grid.ParseAlign(s.XGrid.Align); err != nil {
			return overlay.Layers{}, err
		}
	}

	state := overlay.Reduce(overlay.InitialGridState(), overlay.UpdateConfig{
		Base:     &s.BaseUnit,
		MaxWidth: s.XGrid.MaxWidth,
		Align:    &align,
		ZIndex:   &s.ZIndex,
	}.Validated())

	xvis, err := overlay.ParseVisibility(s.XGrid.Visibility)
	if err != nil {
		return overlay.Layers{}, err
	}
	yvis, err := overlay.ParseVisibility(s.YGrid.Visibility)
	if err != nil {
		return overlay.Layers{}, err
	}
	yvariant, err := overlay.ParseVariant(s.YGrid.Variant)
	if err != nil {
		return overlay.Layers{}, err
	}

	l := overlay.Layers{
		Grid: overlay.PaddedGrid{State: state, Context: &ctx},
		XGrid: &overlay.XGrid{
			Config:     cfg,
			Visibility: xvis,
			Align:      xalign,
			Color:      s.XGrid.Color,
			Padding:    s.XGrid.Padding,
			ZIndex:     s.ZIndex,
			BaseUnit:   state.Base,
			Context:    &ctx,
			ClassName:  s.XGrid.ClassName,
		},
		YGrid: &overlay.YGrid{
			Variant:    yvariant,
			Visibility: yvis,
			BaseUnit:   state.Base,
			Height:     s.YGrid.Height,
			Color:      s.YGrid.Color,
			Context:    &ctx,
			ClassName:  s.YGrid.ClassName,
		},
	}

	if s.Spacer.Enabled {
		svis, err := overlay.ParseVisibility(s.Spacer.Visibility)
		if err != nil {
			return overlay.Layers{}, err
		}
		svariant, err := overlay.ParseVariant(s.Spacer.Variant)
		if err != nil {
			return overlay.Layers{}, err
		}
		sp := &overlay.Spacer{
			Height:     s.Spacer.Height,
			Width:      s.Spacer.Width,
			Variant:    svariant,
			BaseUnit:   state.Base,
			ZIndex:     s.ZIndex,
			Color:      s.Spacer.Color,
			Visibility: svis,
			Context:    &ctx,
			Logger:     logger,
		}
		if s.Spacer.Indicator {
			sp.Indicator = overlay.DefaultIndicator
		}
		l.Spacer = sp
	}
	if s.Padder.Enabled {
		l.Padder = &overlay.Padder{
			Padding:  s.Padder.Padding,
			Width:    s.Padder.Width,
			Height:   s.Padder.Height,
			BaseUnit: overlay.DefaultPadderBase,
			Color:    s.Padder.Color,
			Logger:   logger,
		}
	}
	if s.Box.Enabled {
		bvis, err := overlay.ParseVisibility(s.Box.Visibility)
		if err != nil {
			return overlay.Layers{}, err
		}
		l.Box = &overlay.Box{
			Padding:    s.Box.Padding,
			Width:      s.Box.Width,
			Height:     s.Box.Height,
			Visibility: bvis,
			Logger:     logger,
		}
	}
	return l, nil
}
