package stylus

import (
	"errors"

	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/wrap"
)

// Sentinel errors returned by box construction and rendering. Check
// with errors.Is; rendering wraps them with the phase that failed.
var (
	// ErrCannotFit is returned when the box is too narrow to hold
	// even one glyph of its content.
	ErrCannotFit = wrap.ErrCannotFit

	// ErrBadFontFamily is returned when a requested font family or
	// variant is not registered with the document.
	ErrBadFontFamily = font.ErrUnknownFamily

	// ErrUnknownOption is returned when a box option map contains a
	// key the box does not recognize.
	ErrUnknownOption = errors.New("unknown box option")

	// ErrConfiguration is returned when box options are recognized
	// but carry invalid values.
	ErrConfiguration = errors.New("invalid box configuration")
)
