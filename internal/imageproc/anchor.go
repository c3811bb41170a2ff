package imageproc

import (
	"fmt"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("HAlign(%d)", int(a))
}

type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineBottom
)

func (b Baseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	}
	return fmt.Sprintf("Baseline(%d)", int(b))
}

// Anchor is the point text is drawn at plus how the glyph run is placed around it.
type Anchor struct {
	X, Y     float64
	Align    HAlign
	Baseline Baseline
}

// ComputeAnchor maps a symbolic position to an anchor on a w×h surface.
// Edge positions keep a padding of half the font size.
func ComputeAnchor(p model.Position, w, h, fontSize float64) (Anchor, error) {
	pad := fontSize * 0.5

	switch p {
	case model.TopLeft:
		return Anchor{X: pad, Y: pad, Align: AlignLeft, Baseline: BaselineTop}, nil
	case model.TopCenter:
		return Anchor{X: w / 2, Y: pad, Align: AlignCenter, Baseline: BaselineTop}, nil
	case model.TopRight:
		return Anchor{X: w - pad, Y: pad, Align: AlignRight, Baseline: BaselineTop}, nil
	case model.CenterLeft:
		return Anchor{X: pad, Y: h / 2, Align: AlignLeft, Baseline: BaselineMiddle}, nil
	case model.Center:
		return Anchor{X: w / 2, Y: h / 2, Align: AlignCenter, Baseline: BaselineMiddle}, nil
	case model.CenterRight:
		return Anchor{X: w - pad, Y: h / 2, Align: AlignRight, Baseline: BaselineMiddle}, nil
	case model.BottomLeft:
		return Anchor{X: pad, Y: h - pad, Align: AlignLeft, Baseline: BaselineBottom}, nil
	case model.BottomCenter:
		return Anchor{X: w / 2, Y: h - pad, Align: AlignCenter, Baseline: BaselineBottom}, nil
	case model.BottomRight:
		return Anchor{X: w - pad, Y: h - pad, Align: AlignRight, Baseline: BaselineBottom}, nil
	}
	return Anchor{}, fmt.Errorf("%w: %q", model.ErrIncorrectPosition, p)
}
