/*
NAME
  registry.go

DESCRIPTION
  registry.go holds the per-FORM-type chunk role registration table from
  spec.md §4.1: which tags are buffered as properties (last occurrence
  wins), which are buffered as ordered collections, and which single tag
  is the stop chunk that halts traversal.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package chunk

// FormType is a detected IFF FORM type tag.
type FormType string

const (
	FormILBM FormType = "ILBM"
	FormPBM  FormType = "PBM "
	FormACBM FormType = "ACBM"
	FormRGBN FormType = "RGBN"
	FormRGB8 FormType = "RGB8"
	FormDEEP FormType = "DEEP"
	FormFAXX FormType = "FAXX"
	FormYUVN FormType = "YUVN"
)

// metadataCollections is the passthrough-metadata collection tag set shared
// by every FORM type whose table row names "(metadata)" in spec.md §4.1.
var metadataCollections = []string{
	"CRNG", "ANNO", "TEXT", "EXIF", "IPTC", "XMP0", "ICCP", "ICCN", "GEOT", "GEOF",
}

// registration is one FORM type's chunk role table.
type registration struct {
	stop        string
	required    []string
	properties  []string
	collections []string
}

func (r registration) roleOf(tag string) role {
	if tag == r.stop {
		return roleStop
	}
	for _, t := range r.properties {
		if t == tag {
			return roleProperty
		}
	}
	for _, t := range r.required {
		if t == tag {
			return roleProperty
		}
	}
	for _, t := range r.collections {
		if t == tag {
			return roleCollection
		}
	}
	return roleUnknown
}

// registry maps each supported FORM type to its chunk role table.
var registry = map[FormType]registration{
	FormILBM: {
		stop:        "BODY",
		required:    []string{"BMHD"},
		properties:  []string{"CMAP", "CAMG"},
		collections: metadataCollections,
	},
	FormPBM: {
		stop:        "BODY",
		required:    []string{"BMHD"},
		properties:  []string{"CMAP", "CAMG"},
		collections: metadataCollections,
	},
	FormACBM: {
		stop:        "ABIT",
		required:    []string{"BMHD"},
		properties:  []string{"CMAP", "CAMG"},
		collections: metadataCollections,
	},
	FormRGBN: {
		stop:        "BODY",
		required:    []string{"BMHD"},
		properties:  []string{"CMAP"},
		collections: metadataCollections,
	},
	FormRGB8: {
		stop:        "BODY",
		required:    []string{"BMHD"},
		properties:  []string{"CMAP"},
		collections: metadataCollections,
	},
	FormDEEP: {
		stop:        "DBOD",
		required:    []string{"DGBL", "DPEL"},
		properties:  []string{"DLOC", "DCHG", "TVDC"},
		collections: metadataCollections,
	},
	FormFAXX: {
		stop:        "PAGE",
		required:    []string{"FXHD"},
		properties:  []string{"GPHD", "FLOG"},
		collections: nil,
	},
	FormYUVN: {
		stop:        "DATY",
		required:    []string{"YCHD"},
		properties:  []string{"AUTH"},
		collections: []string{"ANNO", "CRNG", "TEXT", "EXIF", "IPTC", "XMP0", "ICCP", "ICCN", "GEOT", "GEOF"},
	},
}

type role int

const (
	roleUnknown role = iota
	roleProperty
	roleCollection
	roleStop
)
