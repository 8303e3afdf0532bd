// Package ui is the desktop front end: it draws the board with Ebitengine and feeds
// pointer gestures into the board component.
package ui

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const defaultFontSize = 14.0

func init() {
	var err error
	regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		zap.L().Warn("failed to load regular font", zap.Error(err))
	}
	boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		zap.L().Warn("failed to load bold font", zap.Error(err))
	}
}

// GetRegularFace returns the regular face at the default size.
func GetRegularFace() *text.GoTextFace {
	return GetFaceWithSize(defaultFontSize * UIScale)
}

// GetFaceWithSize returns a regular face with a custom size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if regularSource == nil || size <= 0 {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// GetBoldFaceWithSize returns a bold face with a custom size.
func GetBoldFaceWithSize(size float64) *text.GoTextFace {
	if boldSource == nil || size <= 0 {
		return nil
	}
	return &text.GoTextFace{Source: boldSource, Size: size}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
