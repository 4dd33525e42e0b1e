package output

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/df07/go-cube-raytracer/pkg/renderer"
)

const (
	hudPadding    = 6.0
	hudLineHeight = 15.0
)

// HUDLines formats frame statistics for the overlay. fps is omitted when not positive.
func HUDLines(sceneName string, stats renderer.FrameStats, fps float64) []string {
	lines := []string{
		sceneName,
		fmt.Sprintf("%dx%d  %d workers", stats.Width, stats.Height, stats.Workers),
		fmt.Sprintf("%.1f ms  %d rays", float64(stats.Duration.Microseconds())/1000.0, stats.TotalRays()),
	}
	if fps > 0 {
		lines = append(lines, fmt.Sprintf("%.1f fps", fps))
	}
	if stats.TextureMisses > 0 {
		lines = append(lines, fmt.Sprintf("%d texture misses", stats.TextureMisses))
	}
	return lines
}

// DrawHUD returns a copy of img with lines of text over a translucent panel in the
// top-left corner. img itself is not modified.
func DrawHUD(img *image.RGBA, lines []string) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	if len(lines) == 0 {
		return out
	}

	dc := gg.NewContextForRGBA(out)

	width := 0.0
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = max(width, w)
	}
	height := float64(len(lines)) * hudLineHeight

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, width+2*hudPadding, height+2*hudPadding)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		dc.DrawStringAnchored(line, hudPadding, hudPadding+float64(i)*hudLineHeight, 0, 1)
	}

	return out
}
