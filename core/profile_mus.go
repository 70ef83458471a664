package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for stored records. The profile record is flat enough
// to assemble directly from mus-go primitives, so no code generation is
// involved. Field order is the wire format; changing it breaks existing
// stores.

// IDMUS serializes IDs as varint uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// ProfileMUS serializes Profile records.
var ProfileMUS = profileMUS{}

type profileMUS struct{}

func (profileMUS) Marshal(p Profile, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	for _, s := range profileStrings(&p) {
		n += ord.String.Marshal(s, bs[n:])
	}
	n += marshalStringSlice(p.ResearchInterests, bs[n:])
	n += marshalStringSlice(p.Publications, bs[n:])
	n += marshalTime(p.InsertedAt, bs[n:])
	n += marshalTime(p.UpdatedAt, bs[n:])
	return n
}

func (profileMUS) Unmarshal(bs []byte) (p Profile, n int, err error) {
	p.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	fields := []*string{
		&p.Name, &p.Title, &p.Department, &p.Bio,
		&p.Email, &p.URL, &p.GoogleScholar, &p.ResearchGate,
		&p.LinkedIn, &p.Website,
	}
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	p.ResearchInterests, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Publications, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (profileMUS) Size(p Profile) (size int) {
	size = IDMUS.Size(p.Id)
	for _, s := range profileStrings(&p) {
		size += ord.String.Size(s)
	}
	size += sizeStringSlice(p.ResearchInterests)
	size += sizeStringSlice(p.Publications)
	size += sizeTime(p.InsertedAt)
	size += sizeTime(p.UpdatedAt)
	return size
}

// profileStrings lists the scalar string fields in wire order.
func profileStrings(p *Profile) []string {
	return []string{
		p.Name, p.Title, p.Department, p.Bio,
		p.Email, p.URL, p.GoogleScholar, p.ResearchGate,
		p.LinkedIn, p.Website,
	}
}

func marshalStringSlice(vs []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += ord.String.Marshal(v, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) (vs []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	var n1 int
	vs = make([]string, length)
	for i := 0; i < length; i++ {
		vs[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return vs, n, nil
}

func sizeStringSlice(vs []string) (size int) {
	size = varint.Int.Size(len(vs))
	for _, v := range vs {
		size += ord.String.Size(v)
	}
	return size
}

// Timestamps are stored as UnixMicro.
func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}
