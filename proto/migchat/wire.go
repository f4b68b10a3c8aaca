// ABOUTME: Hand-written proto3 wire encoding for the migchat message types
// ABOUTME: Built on protobuf/encoding/protowire; byte-compatible with protoc output

package migchat

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every migchat wire type. AppendWire appends the
// proto3 encoding of the message to b and returns the extended slice;
// UnmarshalWire resets the receiver and decodes data into it.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(data []byte) error
}

// Proto3 scalar semantics: zero values are omitted on encode, unknown fields
// are skipped on decode, repeated varints are packed on encode and accepted
// in both packed and unpacked form on decode.

func appendUint64(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendPackedUint64(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, v)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendEmbedded(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

func consumeUint64(data []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeString(data []byte) (string, int, error) {
	v, n := protowire.ConsumeString(data)
	if n < 0 {
		return "", 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(data []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, n, nil
}

// consumeRepeatedUint64 handles a repeated uint64 field in either packed
// (length-delimited) or unpacked (one varint per tag) form.
func consumeRepeatedUint64(dst []uint64, typ protowire.Type, data []byte) ([]uint64, int, error) {
	switch typ {
	case protowire.VarintType:
		v, n, err := consumeUint64(data)
		if err != nil {
			return dst, 0, err
		}
		return append(dst, v), n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return dst, 0, protowire.ParseError(n)
		}
		for len(packed) > 0 {
			v, vn := protowire.ConsumeVarint(packed)
			if vn < 0 {
				return dst, 0, protowire.ParseError(vn)
			}
			dst = append(dst, v)
			packed = packed[vn:]
		}
		return dst, n, nil
	default:
		return dst, 0, fmt.Errorf("unexpected wire type %v for repeated uint64", typ)
	}
}

func consumeEmbedded(data []byte, m Message) (int, error) {
	raw, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := m.UnmarshalWire(raw); err != nil {
		return 0, err
	}
	return n, nil
}

// skipField discards an unknown field.
func skipField(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

// UserInfo

func (m *UserInfo) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.ShortName)
	return b
}

func (m *UserInfo) UnmarshalWire(data []byte) error {
	*m = UserInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Name, n, err = consumeString(data)
		case num == 2 && typ == protowire.BytesType:
			m.ShortName, n, err = consumeString(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Registration

func (m *Registration) AppendWire(b []byte) []byte {
	return appendUint64(b, 1, m.UserID)
}

func (m *Registration) UnmarshalWire(data []byte) error {
	*m = Registration{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.UserID, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// RegistrationInfo

func (m *RegistrationInfo) AppendWire(b []byte) []byte {
	if m.Registration != nil {
		b = appendEmbedded(b, 1, m.Registration)
	}
	b = appendUint64(b, 2, m.Created)
	return b
}

func (m *RegistrationInfo) UnmarshalWire(data []byte) error {
	*m = RegistrationInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Registration = new(Registration)
			n, err = consumeEmbedded(data, m.Registration)
		case num == 2 && typ == protowire.VarintType:
			m.Created, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// User

func (m *User) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.ShortName)
	b = appendUint64(b, 4, m.Created)
	return b
}

func (m *User) UnmarshalWire(data []byte) error {
	*m = User{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.BytesType:
			m.Name, n, err = consumeString(data)
		case num == 3 && typ == protowire.BytesType:
			m.ShortName, n, err = consumeString(data)
		case num == 4 && typ == protowire.VarintType:
			m.Created, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Chat

func (m *Chat) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.ID)
	b = appendBool(b, 2, m.Permanent)
	b = appendString(b, 3, m.Description)
	b = appendPackedUint64(b, 4, m.Users)
	b = appendUint64(b, 5, m.Created)
	return b
}

func (m *Chat) UnmarshalWire(data []byte) error {
	*m = Chat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			v, n, err = consumeUint64(data)
			m.Permanent = v != 0
		case num == 3 && typ == protowire.BytesType:
			m.Description, n, err = consumeString(data)
		case num == 4:
			m.Users, n, err = consumeRepeatedUint64(m.Users, typ, data)
		case num == 5 && typ == protowire.VarintType:
			m.Created, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChatInfo

func (m *ChatInfo) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.UserID)
	b = appendBool(b, 2, m.Permanent)
	b = appendBool(b, 3, m.AutoEnter)
	b = appendString(b, 4, m.Description)
	b = appendPackedUint64(b, 5, m.DesiredUsers)
	return b
}

func (m *ChatInfo) UnmarshalWire(data []byte) error {
	*m = ChatInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.UserID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			v, n, err = consumeUint64(data)
			m.Permanent = v != 0
		case num == 3 && typ == protowire.VarintType:
			var v uint64
			v, n, err = consumeUint64(data)
			m.AutoEnter = v != 0
		case num == 4 && typ == protowire.BytesType:
			m.Description, n, err = consumeString(data)
		case num == 5:
			m.DesiredUsers, n, err = consumeRepeatedUint64(m.DesiredUsers, typ, data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChatReference

func (m *ChatReference) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.UserID)
	b = appendUint64(b, 2, m.ChatID)
	return b
}

func (m *ChatReference) UnmarshalWire(data []byte) error {
	*m = ChatReference{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.UserID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.VarintType:
			m.ChatID, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Invitation

func (m *Invitation) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.ChatID)
	b = appendUint64(b, 2, m.FromUserID)
	b = appendUint64(b, 3, m.ToUserID)
	return b
}

func (m *Invitation) UnmarshalWire(data []byte) error {
	*m = Invitation{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ChatID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.VarintType:
			m.FromUserID, n, err = consumeUint64(data)
		case num == 3 && typ == protowire.VarintType:
			m.ToUserID, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Post

func (m *Post) AppendWire(b []byte) []byte {
	b = appendUint64(b, 1, m.ID)
	b = appendUint64(b, 2, m.ChatID)
	b = appendUint64(b, 3, m.UserID)
	b = appendString(b, 4, m.Text)
	for _, a := range m.Attachments {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, a)
	}
	b = appendUint64(b, 6, m.Created)
	return b
}

func (m *Post) UnmarshalWire(data []byte) error {
	*m = Post{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ID, n, err = consumeUint64(data)
		case num == 2 && typ == protowire.VarintType:
			m.ChatID, n, err = consumeUint64(data)
		case num == 3 && typ == protowire.VarintType:
			m.UserID, n, err = consumeUint64(data)
		case num == 4 && typ == protowire.BytesType:
			m.Text, n, err = consumeString(data)
		case num == 5 && typ == protowire.BytesType:
			var a []byte
			a, n, err = consumeBytes(data)
			m.Attachments = append(m.Attachments, a)
		case num == 6 && typ == protowire.VarintType:
			m.Created, n, err = consumeUint64(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Result

func (m *Result) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, m.OK)
	b = appendString(b, 2, m.Description)
	return b
}

func (m *Result) UnmarshalWire(data []byte) error {
	*m = Result{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.VarintType:
			var v uint64
			v, n, err = consumeUint64(data)
			m.OK = v != 0
		case num == 2 && typ == protowire.BytesType:
			m.Description, n, err = consumeString(data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// UpdateUsers

func (m *UpdateUsers) AppendWire(b []byte) []byte {
	for _, u := range m.Added {
		b = appendEmbedded(b, 1, u)
	}
	b = appendPackedUint64(b, 2, m.Online)
	b = appendPackedUint64(b, 3, m.Offline)
	return b
}

func (m *UpdateUsers) UnmarshalWire(data []byte) error {
	*m = UpdateUsers{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.BytesType:
			u := new(User)
			n, err = consumeEmbedded(data, u)
			m.Added = append(m.Added, u)
		case num == 2:
			m.Online, n, err = consumeRepeatedUint64(m.Online, typ, data)
		case num == 3:
			m.Offline, n, err = consumeRepeatedUint64(m.Offline, typ, data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// UpdateChats

func (m *UpdateChats) AppendWire(b []byte) []byte {
	for _, c := range m.Updated {
		b = appendEmbedded(b, 1, c)
	}
	b = appendPackedUint64(b, 2, m.Gone)
	return b
}

func (m *UpdateChats) UnmarshalWire(data []byte) error {
	*m = UpdateChats{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var err error
		switch {
		case num == 1 && typ == protowire.BytesType:
			c := new(Chat)
			n, err = consumeEmbedded(data, c)
			m.Updated = append(m.Updated, c)
		case num == 2:
			m.Gone, n, err = consumeRepeatedUint64(m.Gone, typ, data)
		default:
			n, err = skipField(num, typ, data)
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
