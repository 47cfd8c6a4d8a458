package stego

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
)

func copyImage(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	outputImage := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			outputImage.Set(x, y, img.At(x, y))
		}
	}
	return outputImage
}

// readInput reads a whole file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path. Unless overwrite is set it refuses to
// replace an existing file.
func writeOutput(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// checkOutput fails early when path exists and overwrite is not set, so no
// work is done for a result that cannot be saved.
func checkOutput(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return nil
}
