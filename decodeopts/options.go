/*
NAME
  options.go

DESCRIPTION
  options.go declares the decode-time option set for the IFF core, in the
  same {Key, Update, Validate} shape as revid/config/variables.go: each
  option is named by a Key constant, updated from a string value by an
  Update function, and, where the option has a range, checked by a
  Validate function that falls back to a documented default rather than
  leaving an invalid value in place.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package decodeopts declares the caller-tunable options the IFF decoding
// core consults: strict EOL checking for FAXX, whether to gamble on
// treating MMR as MR, the tRNS "keep black opaque" preference from
// spec.md §4.5, and a defensive raster size ceiling.
package decodeopts

import (
	"strconv"

	"github.com/ausocean/utils/logging"
)

// Option keys, matching the revid/config convention of a Key constant per
// field so that callers driving options from a config file or flag set
// have a stable name to key off.
const (
	KeyStrictEOL              = "StrictEOL"
	KeyAllowMMRAsMR           = "AllowMMRAsMR"
	KeyOpaqueTransparentBlack = "OpaqueTransparentBlack"
	KeyMaxRasterBytes         = "MaxRasterBytes"
)

const (
	defaultMaxRasterBytes = 512 * 1024 * 1024 // 512MB; 0 disables the ceiling.
)

// Options holds the resolved decode-time settings.
type Options struct {
	// StrictEOL requires every FAXX MH/MR line's leading EOL marker to
	// carry at least eleven zero bits before its one bit; a shorter
	// marker counts as a bitstream error. When false (the default), any
	// run of zero bits ended by a one bit is accepted as the EOL. In both
	// modes a bitstream error pads the remainder of the raster white and
	// the decode still succeeds.
	StrictEOL bool

	// AllowMMRAsMR opts into treating FXCMPMMR input as if it were MR
	// (spec.md §9's permitted-but-risky choice). Default false: MMR
	// reports Unsupported, the safer of the two defensible choices
	// recorded in DESIGN.md.
	AllowMMRAsMR bool

	// OpaqueTransparentBlack implements spec.md §4.5's tRNS suppression
	// rule: when true and the transparent index is 0, no tRNS entry is
	// emitted even if pixels use that index.
	OpaqueTransparentBlack bool

	// MaxRasterBytes caps width*height*bytesPerPixel before allocation;
	// 0 means unlimited. Exceeding it is a NoMem error rather than an
	// attempted allocation.
	MaxRasterBytes int

	Logger logging.Logger
}

// Default returns the baseline Options every Image uses unless overridden.
func Default() Options {
	return Options{
		StrictEOL:              false,
		AllowMMRAsMR:           false,
		OpaqueTransparentBlack: false,
		MaxRasterBytes:         defaultMaxRasterBytes,
	}
}

// Option mutates an Options value; Apply folds a list of Options together
// over Default().
type Option func(*Options)

// Apply builds an Options starting from Default() and applying each opt in
// order.
func Apply(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithStrictEOL(v bool) Option { return func(o *Options) { o.StrictEOL = v } }

func WithAllowMMRAsMR(v bool) Option { return func(o *Options) { o.AllowMMRAsMR = v } }

func WithOpaqueTransparentBlack(v bool) Option {
	return func(o *Options) { o.OpaqueTransparentBlack = v }
}

func WithMaxRasterBytes(n int) Option { return func(o *Options) { o.MaxRasterBytes = n } }

func WithLogger(l logging.Logger) Option { return func(o *Options) { o.Logger = l } }

// variable is one {name, apply-from-string, range-check} entry, mirroring
// revid/config's anonymous Variables slice.
type variable struct {
	Name     string
	Update   func(*Options, string) error
	Validate func(*Options)
}

// variables lists every string-settable Option, for callers that accept
// options as "Key=Value" flags rather than Go function calls.
var variables = []variable{
	{
		Name: KeyStrictEOL,
		Update: func(o *Options, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			o.StrictEOL = b
			return nil
		},
	},
	{
		Name: KeyAllowMMRAsMR,
		Update: func(o *Options, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			o.AllowMMRAsMR = b
			return nil
		},
	},
	{
		Name: KeyOpaqueTransparentBlack,
		Update: func(o *Options, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			o.OpaqueTransparentBlack = b
			return nil
		},
	},
	{
		Name: KeyMaxRasterBytes,
		Update: func(o *Options, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			o.MaxRasterBytes = n
			return nil
		},
		Validate: func(o *Options) {
			if o.MaxRasterBytes < 0 {
				o.MaxRasterBytes = defaultMaxRasterBytes
			}
		},
	},
}

// SetByName applies value to the named option key by string, validating
// afterwards. Unknown keys are reported as an error rather than silently
// ignored.
func SetByName(o *Options, key, value string) error {
	for _, v := range variables {
		if v.Name != key {
			continue
		}
		if err := v.Update(o, value); err != nil {
			return err
		}
		if v.Validate != nil {
			v.Validate(o)
		}
		return nil
	}
	return &unknownKeyError{key}
}

type unknownKeyError struct{ key string }

func (e *unknownKeyError) Error() string { return "decodeopts: unknown option key " + e.key }
