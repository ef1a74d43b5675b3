package theme

import (
	"errors"
	"fmt"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/overlay"
)

// ShareBadge draws a QR code of rc.ShareURL on a light tile in the corner
// opposite the text anchor. It draws nothing without a share URL.
type ShareBadge struct {
	Size    float64
	Padding float64
}

func (ShareBadge) Name() string { return "share-badge" }

func (b ShareBadge) Draw(rc *layout.RenderContext, _ *Theme) error {
	if rc.ShareURL == "" {
		return nil
	}
	side := b.Size + 2*b.Padding
	if side > rc.Width()-2*layout.Margin || side > rc.Height()-2*layout.Margin {
		return errors.New("share badge: canvas too small")
	}

	x := rc.Width() - layout.Margin - side
	if rc.Anchor.Right() {
		x = layout.Margin
	}
	y := rc.Height() - layout.Margin - side
	if rc.Anchor.Bottom() {
		y = layout.Margin
	}

	c := rc.Canvas
	var err error
	c.Scoped(func() {
		c.SetFillColor("rgba(255, 255, 255, 0.9)")
		c.FillRect(x, y, side, side)

		qr, qerr := overlay.QRImage(rc.ShareURL, int(b.Size), canvas.MustColor(layout.TextColor(true)))
		if qerr != nil {
			err = fmt.Errorf("share badge: %w", qerr)
			return
		}
		c.DrawImage(qr, x+b.Padding, y+b.Padding, b.Size, b.Size)
	})
	return err
}
