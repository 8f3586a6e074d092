package custombin

import (
	"io"
	"strconv"

	"pganonymize/internal/core"
)

// Section is the TOC entry's dump section.
type Section int

const (
	SectionNone Section = iota
	SectionPreData
	SectionData
	SectionPostData
)

func sectionFromInt(v int32) Section {
	switch v {
	case 1:
		return SectionPreData
	case 2:
		return SectionData
	case 3:
		return SectionPostData
	default:
		return SectionNone
	}
}

// TocEntry is one parsed table-of-contents record.
type TocEntry struct {
	DumpID       int32
	Section      Section
	Tag          string
	Desc         string
	Defn         string
	CopyStmt     string
	DropStmt     string
	Namespace    string
	Tablespace   string
	Tableam      string
	Owner        string
	Dependencies []int32
	Offset       int64
	DataState    byte
}

// ParseTOC reads every TOC entry, bypassing all bytes read to w.
func ParseTOC(r io.Reader, w io.Writer, header *Header) ([]TocEntry, error) {
	dio := New(header.IntSize, header.OffsetSize)

	tocCount, err := dio.ReadIntBypass(r, w)
	if err != nil {
		return nil, core.Wrap(core.KindIO, "reading TOC count", err)
	}
	if tocCount < 0 {
		tocCount = 0
	}

	entries := make([]TocEntry, 0, tocCount)
	for i := int32(0); i < tocCount; i++ {
		entry, err := parseTocEntry(r, w, dio, header)
		if err != nil {
			return nil, core.Wrapf(core.KindIO, err, "reading TOC entry %d", i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseTocEntry(r io.Reader, w io.Writer, dio *IO, header *Header) (TocEntry, error) {
	var entry TocEntry

	dumpID, err := dio.ReadIntBypass(r, w)
	if err != nil {
		return entry, err
	}
	entry.DumpID = dumpID

	if _, err := dio.ReadIntBypass(r, w); err != nil { // hadDumper
		return entry, err
	}
	if _, _, err := dio.ReadStringBypass(r, w); err != nil { // table OID
		return entry, err
	}
	if _, _, err := dio.ReadStringBypass(r, w); err != nil { // OID
		return entry, err
	}

	tag, _, err := dio.ReadStringBypass(r, w)
	if err != nil {
		return entry, err
	}
	entry.Tag = tag

	desc, _, err := dio.ReadStringBypass(r, w)
	if err != nil {
		return entry, err
	}
	entry.Desc = desc

	sectionRaw, err := dio.ReadIntBypass(r, w)
	if err != nil {
		return entry, err
	}
	entry.Section = sectionFromInt(sectionRaw)

	if entry.Defn, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}
	if entry.DropStmt, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}
	if entry.CopyStmt, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}
	if entry.Namespace, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}
	if entry.Tablespace, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}

	if header.IsVersionAtLeast(1, 14, 0) {
		if entry.Tableam, _, err = dio.ReadStringBypass(r, w); err != nil {
			return entry, err
		}
	}

	if entry.Owner, _, err = dio.ReadStringBypass(r, w); err != nil {
		return entry, err
	}
	if _, _, err := dio.ReadStringBypass(r, w); err != nil { // withOids
		return entry, err
	}

	for {
		dep, ok, err := dio.ReadStringBypass(r, w)
		if err != nil {
			return entry, err
		}
		if !ok || dep == "" {
			break
		}
		if depID, convErr := strconv.ParseInt(dep, 10, 32); convErr == nil {
			entry.Dependencies = append(entry.Dependencies, int32(depID))
		}
	}

	dataState, err := ReadByte(r)
	if err != nil {
		return entry, err
	}
	if _, err := w.Write([]byte{dataState}); err != nil {
		return entry, err
	}
	entry.DataState = dataState

	offset, err := dio.ReadOffsetBypass(r, w)
	if err != nil {
		return entry, err
	}
	entry.Offset = offset

	return entry, nil
}
