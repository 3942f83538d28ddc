package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// RecordMUS is the MUS serializer for Record.
// Field order is part of the on-disk format; append new fields at the end.
var RecordMUS = recordMUS{}

type recordMUS struct{}

func (s recordMUS) Marshal(v Record, bs []byte) (n int) {
	n = ord.String.Marshal(v.Identifier, bs)
	n += ord.String.Marshal(v.ProductName, bs[n:])
	n += raw.Float64.Marshal(v.Price, bs[n:])
	n += ord.String.Marshal(v.Comment, bs[n:])
	return n + raw.Float64.Marshal(v.Rating, bs[n:])
}

func (s recordMUS) Unmarshal(bs []byte) (v Record, n int, err error) {
	v.Identifier, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ProductName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Price, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Comment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Rating, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s recordMUS) Size(v Record) (size int) {
	size = ord.String.Size(v.Identifier)
	size += ord.String.Size(v.ProductName)
	size += raw.Float64.Size(v.Price)
	size += ord.String.Size(v.Comment)
	return size + raw.Float64.Size(v.Rating)
}
