// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for types that cross the storage boundary.
// Timestamps are stored as Unix microseconds.
var (
	// IDMUS serializes an ID.
	IDMUS = idMUS{}
	// SecurityEventMUS serializes a SecurityEvent.
	SecurityEventMUS = securityEventMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type securityEventMUS struct{}

func (securityEventMUS) Marshal(v SecurityEvent, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.CallId, bs[n:])
	n += varint.Int.Marshal(int(v.Kind), bs[n:])
	n += varint.Int.Marshal(int(v.Severity), bs[n:])
	n += ord.String.Marshal(v.DetectionType, bs[n:])
	n += varint.Int.Marshal(int(v.Direction), bs[n:])
	n += ord.String.Marshal(v.Message, bs[n:])
	n += ord.Bool.Marshal(v.Blocked, bs[n:])
	n += varint.Int64.Marshal(v.Timestamp.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (securityEventMUS) Unmarshal(bs []byte) (v SecurityEvent, n int, err error) {
	var (
		m int
		i int64
		k int
	)
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n, err
	}
	if v.CallId, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if k, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.Kind = EventKind(k)
	n += m
	if k, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.Severity = Severity(k)
	n += m
	if v.DetectionType, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if k, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.Direction = Direction(k)
	n += m
	if v.Message, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Blocked, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if i, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.Timestamp = time.UnixMicro(i)
	n += m
	if i, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.InsertedAt = time.UnixMicro(i)
	n += m
	return v, n, nil
}

func (securityEventMUS) Size(v SecurityEvent) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.CallId)
	size += varint.Int.Size(int(v.Kind))
	size += varint.Int.Size(int(v.Severity))
	size += ord.String.Size(v.DetectionType)
	size += varint.Int.Size(int(v.Direction))
	size += ord.String.Size(v.Message)
	size += ord.Bool.Size(v.Blocked)
	size += varint.Int64.Size(v.Timestamp.UnixMicro())
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return size
}
