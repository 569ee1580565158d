package otface

import (
	"github.com/npillmayer/otface/internal/fontload"
	"github.com/npillmayer/otface/ot"
)

// Convenience entry points for the common case of having a font file or a
// complete SFNT byte stream, rather than a hand-built table provider.

// FromBinary builds a face from raw OpenType bytes.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the face to remain usable.
func FromBinary(data []byte) (ot.Option[*Face], error) {
	f, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return ot.None[*Face](), err
	}
	provider, err := f.Provider()
	if err != nil {
		return ot.None[*Face](), err
	}
	return New(provider)
}

// LoadFace builds a face from an OpenType font file (TTF or OTF).
func LoadFace(path string) (ot.Option[*Face], error) {
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return ot.None[*Face](), err
	}
	tracer().Infof("loaded font %s", f.Fontname)
	provider, err := f.Provider()
	if err != nil {
		return ot.None[*Face](), err
	}
	return New(provider)
}
