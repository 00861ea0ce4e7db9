package rodsession

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const maxShotWidth = 1024

// CaptureFailure writes a downsized JPEG of the current page to
// <ScreenshotDir>/<runID>.jpg. Best-effort: every failure is logged and
// swallowed, a debugging aid must never change a run's outcome.
func (s *Session) CaptureFailure(runID string) {
	imgBytes, err := s.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		s.log.Warn("failure screenshot capture failed", "error", err)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		s.log.Warn("failure screenshot decode failed", "error", err)
		return
	}

	if img.Bounds().Dx() > maxShotWidth {
		img = imaging.Resize(img, maxShotWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		s.log.Warn("failure screenshot encode failed", "error", err)
		return
	}

	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		s.log.Warn("screenshot dir create failed", "error", err)
		return
	}

	path := filepath.Join(s.cfg.ScreenshotDir, runID+".jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		s.log.Warn("failure screenshot write failed", "error", err)
		return
	}

	s.log.Info("failure screenshot saved", "path", path)
}
