package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes messages for one connection. The client
// negotiates the codec through the websocket subprotocol: "vero-mp"
// selects msgpack, anything else falls back to JSON.
type Codec interface {
	Name() string
	Encode(Message) ([]byte, error)
	Decode([]byte) (Message, error)
}

// Subprotocol names.
const (
	SubprotocolJSON    = "vero-json"
	SubprotocolMsgpack = "vero-mp"
)

// Negotiate picks the codec for an accepted subprotocol.
func Negotiate(subprotocol string) Codec {
	if subprotocol == SubprotocolMsgpack {
		return MsgpackCodec{}
	}
	return JSONCodec{}
}

// JSONCodec is the default text codec.
type JSONCodec struct{}

func (JSONCodec) Name() string { return SubprotocolJSON }

func (JSONCodec) Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	return m, nil
}

// MsgpackCodec is the binary codec for clients that ask for it.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return SubprotocolMsgpack }

func (MsgpackCodec) Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

func (MsgpackCodec) Decode(data []byte) (Message, error) {
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	return m, nil
}
