/*
NAME
  image.go

DESCRIPTION
  image.go provides the Image handle, the single owner of every parsed
  header, decoded raster, and metadata buffer described in spec.md §3.
  Open reads and validates the FORM container's headers; Decode runs the
  selected format decoder and derives the PNG re-encoding configuration.
  Grounded on container/mts's Encoder/Decoder struct-as-owner pattern: one
  struct owns everything, methods take *Image rather than scattering
  sub-object ownership.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package iff decodes legacy IFF bitmap container files (ILBM, PBM, ACBM,
// RGBN, RGB8, DEEP, FAXX, YUVN) into a single uniform raster representation
// plus the parameters needed to re-encode it as PNG. See SPEC_FULL.md for
// the full module layout.
package iff

import (
	"io"

	"github.com/ausocean/iffimage/analyse"
	"github.com/ausocean/iffimage/chunk"
	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/format"
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
	"github.com/ausocean/iffimage/meta"
)

// Image is the central decoding handle: it owns every header record, the
// decoded raster, the palette-index shadow, and the metadata vault
// reachable from it (spec.md §3). It is not safe for concurrent use by
// more than one goroutine at a time.
type Image struct {
	Form chunk.FormType

	BMHD header.BMHD
	FXHD header.FXHD
	YCHD header.YCHD

	Viewport header.ViewportMode
	Palette  *header.Palette

	DGBL header.DGBL
	DPEL header.DPEL
	DLOC header.DLOC
	DCHG header.DCHG
	TVDC header.TVDC

	Width, Height int
	// Pix is row-major, top row first, 3 bytes/pixel (RGB) or 4 (RGBA).
	Pix []byte
	// Indices is the palette-index shadow buffer, nil for non-indexed
	// formats.
	Indices []byte

	IsHAM       bool
	IsEHB       bool
	IsCompressed bool
	IsIndexed   bool
	IsGrayscale bool
	HasAlpha    bool

	IsLoaded   bool
	IsDecoded  bool
	PartialFAX bool

	Meta *meta.Vault

	PNGConfig analyse.Config

	lastErr *ifferr.Error
	opts    decodeopts.Options
	parser  *chunk.Parser
}

// Open reads and validates a FORM container's headers from r. It does not
// decode pixel data; call Decode for that.
func Open(r io.Reader, opts ...decodeopts.Option) (*Image, error) {
	img := &Image{opts: decodeopts.Apply(opts...)}

	p, err := chunk.Open(r)
	if err != nil {
		return nil, img.fail(err)
	}
	if err := p.Scan(); err != nil {
		return nil, img.fail(err)
	}
	img.Form = p.Form
	img.parser = p
	img.Meta = meta.New()
	for tag, items := range p.Collections {
		for _, data := range items {
			img.Meta.Add(tag, data)
		}
	}

	if err := img.readHeaders(p); err != nil {
		return nil, img.fail(err)
	}
	if img.Meta.Empty() {
		img.Meta = nil
	}
	if err := img.checkInvariants(); err != nil {
		return nil, img.fail(err)
	}

	img.IsLoaded = true
	return img, nil
}

func (img *Image) readHeaders(p *chunk.Parser) error {
	switch img.Form {
	case chunk.FormILBM, chunk.FormPBM, chunk.FormACBM, chunk.FormRGBN, chunk.FormRGB8:
		bmhd, err := header.ReadBMHD(p.Properties["BMHD"])
		if err != nil {
			return err
		}
		img.BMHD = bmhd
		img.IsCompressed = bmhd.Compression == header.CmpByteRun1
		if b, ok := p.Properties["CMAP"]; ok {
			pal, err := header.ReadCMAP(b)
			if err != nil {
				return err
			}
			img.Palette = &pal
		}
		if b, ok := p.Properties["CAMG"]; ok {
			vm, err := header.ReadCAMG(b)
			if err != nil {
				return err
			}
			img.Viewport = vm
			img.IsHAM = vm.HasAny(header.VMHAM)
			img.IsEHB = vm.HasAny(header.VMExtraHalfBrite)
		}

	case chunk.FormDEEP:
		dgbl, err := header.ReadDGBL(p.Properties["DGBL"])
		if err != nil {
			return err
		}
		dpel, err := header.ReadDPEL(p.Properties["DPEL"])
		if err != nil {
			return err
		}
		img.DGBL = dgbl
		img.DPEL = dpel
		if b, ok := p.Properties["DLOC"]; ok {
			img.DLOC = header.ReadDLOC(b)
		}
		if b, ok := p.Properties["DCHG"]; ok {
			img.DCHG = header.ReadDCHG(b)
		}
		if b, ok := p.Properties["TVDC"]; ok {
			img.TVDC = header.ReadTVDC(b)
		}

	case chunk.FormFAXX:
		fxhd, err := header.ReadFXHD(p.Properties["FXHD"])
		if err != nil {
			return err
		}
		img.FXHD = fxhd

	case chunk.FormYUVN:
		ychd, err := header.ReadYCHD(p.Properties["YCHD"])
		if err != nil {
			return err
		}
		img.YCHD = ychd
		if b, ok := p.Properties["AUTH"]; ok {
			img.Meta.Add("AUTH", b)
		}

	default:
		return ifferr.Newf(ifferr.Unsupported, "iff: no header reader registered for FORM %q", img.Form)
	}
	return nil
}

// checkInvariants enforces the spec.md §3 invariants that are cheap to
// check from headers alone, before any pixel data is touched. The
// per-format structural invariants (nPlanes ranges, ACBM forbidding
// compression, and so on) are enforced by the format decoder itself at
// Decode time, since they require the FORM type's own fields.
func (img *Image) checkInvariants() error {
	switch img.Form {
	case chunk.FormFAXX:
		if img.FXHD.Width == 0 || img.FXHD.Height == 0 {
			return ifferr.New(ifferr.BadFile, "iff: FAXX width/height must be positive")
		}
	case chunk.FormYUVN:
		if img.YCHD.Width == 0 || img.YCHD.Height == 0 {
			return ifferr.New(ifferr.BadFile, "iff: YUVN width/height must be positive")
		}
	default:
		if img.BMHD.Width == 0 || img.BMHD.Height == 0 {
			return ifferr.New(ifferr.BadFile, "iff: bitmap width/height must be positive")
		}
	}
	return nil
}

// Decode runs the per-FORM-type pixel decoder selected by Dispatch and
// derives the PNG re-encoding configuration. Calling Decode a second time
// on the same Image reports Invalid (spec.md §8 property 7): the
// underlying data-chunk stream has already been consumed.
func (img *Image) Decode() error {
	if img.lastErr != nil {
		return img.lastErr
	}
	if !img.IsLoaded {
		return img.fail(ifferr.New(ifferr.Invalid, "iff: Decode called before a successful Open"))
	}
	if img.IsDecoded {
		return img.fail(ifferr.New(ifferr.Invalid, "iff: Decode called twice on the same Image"))
	}

	params := img.buildParams()
	res, err := format.Dispatch(params)
	if err != nil {
		return img.fail(err)
	}

	img.Width = res.Width
	img.Height = res.Height
	img.Pix = res.Pix
	img.HasAlpha = res.HasAlpha
	img.Indices = res.Indices
	img.IsIndexed = res.IsIndexed
	img.IsHAM = img.IsHAM || res.IsHAM
	img.IsEHB = img.IsEHB || res.IsEHB
	img.PartialFAX = res.PartialFAX

	flags := analyse.DeriveFlags(res, img.Palette)
	img.IsGrayscale = flags.IsGrayscale

	img.PNGConfig = analyse.DeriveConfig(res, img.Palette, int(img.BMHD.NPlanes), img.BMHD.Masking, int(img.BMHD.TransparentColor), img.opts)

	if img.opts.Logger != nil && img.PartialFAX {
		img.opts.Logger.Warning("faxx decode hit a bitstream error, padded remainder white", "form", string(img.Form))
	}

	img.IsDecoded = true
	return nil
}

// buildParams assembles format.Params from the parsed headers and the
// stop-chunk reader left positioned by Open's Scan.
func (img *Image) buildParams() format.Params {
	p := format.Params{
		Form:     img.Form,
		BMHD:     img.BMHD,
		Palette:  img.Palette,
		Viewport: img.Viewport,
		DGBL:     img.DGBL,
		DPEL:     img.DPEL,
		FXHD:     img.FXHD,
		YCHD:     img.YCHD,
		Stop:     img.parser.Stop,
		Opts:     img.opts,
	}
	if img.Form == chunk.FormYUVN {
		drained := false
		p.DrainAndNext = func() (string, []byte, error) {
			if !drained {
				drained = true
				if err := img.parser.DrainStop(); err != nil {
					return "", nil, err
				}
			}
			return img.parser.NextRawChunk()
		}
	}
	return p
}

// Err returns the latched error, if any (spec.md §7's "first error on a
// handle is latched" rule).
func (img *Image) Err() error {
	if img.lastErr == nil {
		return nil
	}
	return img.lastErr
}

func (img *Image) fail(err error) *ifferr.Error {
	if e, ok := err.(*ifferr.Error); ok {
		img.lastErr = e
		return e
	}
	wrapped := ifferr.Wrap(ifferr.Error, err, "iff: unexpected error")
	img.lastErr = wrapped
	return wrapped
}

// Dispose releases every buffer reachable from img in one operation
// (spec.md §5). In Go this is reachable-memory bookkeeping rather than a
// manual free, but it is provided so callers keeping a long-lived Image
// around can drop large rasters deterministically rather than waiting on
// GC.
func (img *Image) Dispose() {
	img.Pix = nil
	img.Indices = nil
	img.Meta = nil
	img.Palette = nil
	img.parser = nil
}
