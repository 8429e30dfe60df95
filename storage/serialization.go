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


package storage

import (
	"github.com/poiesic/rampart/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalSecurityEvent serializes a SecurityEvent to bytes.
func MarshalSecurityEvent(event *core.SecurityEvent) []byte {
	buf := make([]byte, core.SecurityEventMUS.Size(*event))
	core.SecurityEventMUS.Marshal(*event, buf)
	return buf
}

// UnmarshalSecurityEvent deserializes a SecurityEvent from bytes.
func UnmarshalSecurityEvent(data []byte) (*core.SecurityEvent, error) {
	event, _, err := core.SecurityEventMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
