package stego

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
)

// AnalyzeArgs holds the inputs of Analyze.
type AnalyzeArgs struct {
	Original []byte
	Stego    []byte
	// Heatmap receives a PNG highlighting modified pixels. Optional.
	Heatmap  io.Writer
	Progress Progress
}

// AnalysisResult holds metrics about the comparison between two images.
type AnalysisResult struct {
	MSE            float64 // Mean Squared Error
	PSNR           float64 // Peak Signal-to-Noise Ratio (dB)
	ModifiedPixels int
	ModifiedBytes  int
}

// Analyze compares an original bitmap with its stego counterpart at pixel
// level and, optionally, renders a difference heatmap.
func Analyze(args *AnalyzeArgs) (*AnalysisResult, error) {
	if len(args.Original) != len(args.Stego) {
		return nil, fmt.Errorf("file sizes do not match: %d vs %d", len(args.Original), len(args.Stego))
	}

	img1Raw, err := bmp.Decode(bytes.NewReader(args.Original))
	if err != nil {
		return nil, fmt.Errorf("failed to decode original: %w", err)
	}
	img2Raw, err := bmp.Decode(bytes.NewReader(args.Stego))
	if err != nil {
		return nil, fmt.Errorf("failed to decode stego image: %w", err)
	}

	// Convert both to NRGBA for consistent pixel access
	img1 := copyImage(img1Raw)
	img2 := copyImage(img2Raw)

	bounds := img1.Bounds()
	if bounds != img2.Bounds() {
		return nil, fmt.Errorf("image dimensions do not match: %v vs %v", bounds, img2.Bounds())
	}

	result := &AnalysisResult{}
	for i := range args.Original {
		if args.Original[i] != args.Stego[i] {
			result.ModifiedBytes++
		}
	}

	width, height := bounds.Dx(), bounds.Dy()
	var sumSquaredError float64
	heatmap := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p1 := img1.PixOffset(x, y)
			p2 := img2.PixOffset(x, y)

			var diffSum float64
			isModified := false

			// Alpha is ignored: 24-bit bitmaps have none.
			for i := 0; i < 3; i++ {
				diff := float64(img1.Pix[p1+i]) - float64(img2.Pix[p2+i])
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)
				if diff != 0 {
					isModified = true
				}
			}

			// Black = untouched, green to red = growing difference.
			if isModified {
				result.ModifiedPixels++
				intensity := uint8(math.Min(255, diffSum*16))
				heatmap.Set(x, y, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.Set(x, y, color.NRGBA{A: 255})
			}
		}
		if args.Progress != nil {
			args.Progress.Add(width)
		}
	}

	totalPixels := float64(width * height)
	result.MSE = sumSquaredError / (totalPixels * 3.0)
	result.PSNR = 10 * math.Log10((255*255)/result.MSE)

	if args.Heatmap != nil {
		if err := png.Encode(args.Heatmap, heatmap); err != nil {
			return nil, fmt.Errorf("failed to encode heatmap: %w", err)
		}
	}

	return result, nil
}
