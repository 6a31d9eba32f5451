/*
NAME
  error.go

DESCRIPTION
  error.go re-exports the ifferr five-code error contract at the root
  package for ergonomic `iff.Code`/`iff.BadFile`-style access, so callers
  of this package need not import the ifferr subpackage directly for the
  common case.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package iff

import "github.com/ausocean/iffimage/ifferr"

// Code is the stable five-value error code contract from spec.md §6.
type Code = ifferr.Code

// The five stable error codes, re-exported for convenience.
const (
	Ok          = ifferr.Ok
	ErrGeneric  = ifferr.Error
	NoMem       = ifferr.NoMem
	BadFile     = ifferr.BadFile
	Unsupported = ifferr.Unsupported
	Invalid     = ifferr.Invalid
)

// CodeOf extracts the stable Code from err.
func CodeOf(err error) Code { return ifferr.CodeOf(err) }
