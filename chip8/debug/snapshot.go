package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot handles snapshot requests from backends.
// patternName is empty unless a test pattern is being displayed.
func TakeSnapshot(frame *video.FrameBuffer, patternName string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "chip8_snapshot"
	if patternName != "" {
		baseName = fmt.Sprintf("chip8_snapshot_%s", patternName)
	}

	timestamp := time.Now().Format("20060102_150405")
	if _, err := SaveFramePNGToDir(frame, fmt.Sprintf("%s_%s", baseName, timestamp), ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts a frame to an image, each CHIP-8 pixel becoming a
// scale x scale block.
func FrameImage(frame *video.FrameBuffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			src.SetRGBA(x, y, display.PixelColor(frame.GetPixel(x, y)))
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveFramePNGToDir saves a frame as <baseName>.png in directory, or the
// working directory if directory is empty. It returns the written path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get current directory")
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, baseName+".png")
	file, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create file %s", filePath)
	}

	img := FrameImage(frame, display.SnapshotScale)
	if err := writePNG(file, img); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", filePath)
	}

	bounds := img.Bounds()
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()), "format", "PNG")
	return filePath, nil
}

// writePNG encodes img to w and closes it. A failed Close is reported, the
// file may be incomplete.
func writePNG(w io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close PNG file")
		}
	}()

	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "failed to encode PNG")
	}
	return nil
}
