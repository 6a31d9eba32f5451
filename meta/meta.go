/*
NAME
  meta.go

DESCRIPTION
  meta.go implements the metadata vault, spec.md §3/§9: copies of optional
  informational chunks (EXIF/IPTC/XMP/ICC/GeoTIFF, colour-cycle ranges,
  textual annotations, YUVN AUTH records) passed through to the PNG
  back-end untouched. Grounded on container/mts/psi.go's ordered,
  append-only descriptor-list pattern. Per spec.md §9's "static result
  scratch" note, list lookups return a value-type List rather than a
  process-wide struct pointer.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package meta holds the IFF decoding core's metadata vault: ordered,
// per-tag copies of collection chunks. Image.Open leaves Image.Meta nil
// when the source file carried none.
package meta

// List is a value-type view of all buffered instances of one chunk tag,
// in file order.
type List struct {
	Tag   string
	Items [][]byte
}

// Len returns the number of buffered instances.
func (l List) Len() int { return len(l.Items) }

// Vault buffers every collection-chunk instance encountered while
// parsing, keyed by tag, in the order they appeared (spec.md §4.1).
type Vault struct {
	collections map[string][][]byte
	order       []string
}

// New returns an empty Vault. A nil *Vault is also valid to query (every
// method treats it as empty), so callers may leave Image.Meta nil until
// the first chunk is actually added.
func New() *Vault {
	return &Vault{collections: make(map[string][][]byte)}
}

// Add appends one more instance of tag's payload, copying it so the
// vault never aliases the parser's buffers.
func (v *Vault) Add(tag string, data []byte) {
	if v == nil {
		return
	}
	if _, ok := v.collections[tag]; !ok {
		v.order = append(v.order, tag)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	v.collections[tag] = append(v.collections[tag], cp)
}

// Get returns all buffered instances of tag, in file order.
func (v *Vault) Get(tag string) List {
	if v == nil {
		return List{Tag: tag}
	}
	return List{Tag: tag, Items: v.collections[tag]}
}

// Tags returns every tag the vault holds at least one instance of, in
// first-seen order.
func (v *Vault) Tags() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Empty reports whether the vault holds no chunks at all, matching
// spec.md §3's "absent if the file carried no informational chunks" rule
// for deciding whether Image.Meta should be considered present.
func (v *Vault) Empty() bool {
	return v == nil || len(v.order) == 0
}
