/*
NAME
  yuvn.go

DESCRIPTION
  yuvn.go implements the YUVN subsampled-YUV pixel decoder, spec.md
  §4.4.10: DATY is full-resolution luminance (the registered stop chunk),
  DATU/DATV are reduced-resolution chrominance planes read via
  Params.DrainAndNext after DATY, and an optional DATA plane carries
  8-bit alpha. Chrominance is upsampled to full resolution by pixel
  replication before a CCIR-601/JFIF YUV->RGB conversion. Only
  uncompressed YUVN is supported.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package format

import (
	"io"

	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
)

// chromaDims returns the chroma plane's (width, height) for the given
// subsampling mode, derived from the luma plane's full (w, h). spec.md §3
// only pins down the width constraints for 411/422/211; the rest follow
// the same halving convention by extension (documented judgement call,
// see DESIGN.md).
func chromaDims(mode header.YUVMode, w, h int) (cw, ch int) {
	switch mode {
	case header.YUVMode422:
		return w / 2, h
	case header.YUVMode411:
		return w / 4, h
	case header.YUVMode211:
		return w / 2, h / 2
	case header.YUVMode410:
		return w / 4, h / 2
	case header.YUVMode420:
		return w / 2, h / 2
	default: // YUVMode444A, YUVMode44: full resolution chroma.
		return w, h
	}
}

func decodeYUVN(p Params) (Result, error) {
	w, h := int(p.YCHD.Width), int(p.YCHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "yuvn: non-positive dimensions %dx%d", w, h)
	}
	if p.YCHD.Compress != 0 {
		return Result{}, ifferr.New(ifferr.Unsupported, "yuvn: only uncompressed YUVN is supported")
	}
	if err := checkYUVConstraints(p.YCHD, w, h); err != nil {
		return Result{}, err
	}

	luma := make([]byte, w*h)
	if _, err := io.ReadFull(p.Stop, luma); err != nil {
		return Result{}, ifferr.Wrap(ifferr.BadFile, err, "yuvn: reading DATY luma plane")
	}

	if p.DrainAndNext == nil {
		return Result{}, ifferr.New(ifferr.Error, "yuvn: no chunk continuation available after DATY")
	}

	cw, ch := chromaDims(p.YCHD.Mode, w, h)
	var u, v, alpha []byte
	for {
		tag, data, err := p.DrainAndNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
		switch tag {
		case "DATU":
			u = data
		case "DATV":
			v = data
		case "DATA":
			alpha = data
		}
	}
	if len(u) < cw*ch || len(v) < cw*ch {
		return Result{}, ifferr.New(ifferr.BadFile, "yuvn: DATU/DATV shorter than declared chroma plane size")
	}
	hasAlpha := alpha != nil
	if hasAlpha && len(alpha) < w*h {
		return Result{}, ifferr.New(ifferr.BadFile, "yuvn: DATA alpha plane shorter than luma plane")
	}

	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}

	for y := 0; y < h; y++ {
		cy := y
		if ch != h {
			cy = y * ch / h
		}
		for x := 0; x < w; x++ {
			cx := x
			if cw != w {
				cx = x * cw / w
			}
			yy := luma[y*w+x]
			uu := u[cy*cw+cx]
			vv := v[cy*cw+cx]
			r, g, b := yuvToRGB(yy, uu, vv)
			off := (y*w + x) * bpp
			pix[off], pix[off+1], pix[off+2] = r, g, b
			if hasAlpha {
				pix[off+3] = alpha[y*w+x]
			}
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix, HasAlpha: hasAlpha,
	}, nil
}

// checkYUVConstraints enforces spec.md §3's YUVN subsampling width/height
// requirements.
func checkYUVConstraints(y header.YCHD, w, h int) error {
	switch y.Mode {
	case header.YUVMode411:
		if w%4 != 0 {
			return ifferr.Newf(ifferr.BadFile, "yuvn: mode 411 requires width%%4==0, got %d", w)
		}
	case header.YUVMode422, header.YUVMode211:
		if w%2 != 0 {
			return ifferr.Newf(ifferr.BadFile, "yuvn: mode %d requires width%%2==0, got %d", y.Mode, w)
		}
	}
	if y.Interlaced() && h%2 != 0 {
		return ifferr.Newf(ifferr.BadFile, "yuvn: interlaced requires height%%2==0, got %d", h)
	}
	return nil
}

// yuvToRGB converts one CCIR-601/JFIF YUV triple to RGB, clamping to
// [0,255].
func yuvToRGB(y, u, v byte) (r, g, b byte) {
	fy := float64(y)
	fu := float64(int(u) - 128)
	fv := float64(int(v) - 128)
	r = clamp8(fy + 1.402*fv)
	g = clamp8(fy - 0.344136*fu - 0.714136*fv)
	b = clamp8(fy + 1.772*fu)
	return r, g, b
}

func clamp8(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
