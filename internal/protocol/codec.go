package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Codec errors
var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownKind = errors.New("unknown message kind")
)

// Decode parses a single framed message into its concrete type.
func Decode(data []byte) (Message, error) {
	var env struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var msg Message
	switch env.Type {
	case KindLogin:
		msg = &Login{}
	case KindLoginSuccess:
		msg = &LoginSuccess{}
	case KindLoginFailed:
		msg = &LoginFailed{}
	case KindStart:
		msg = &Start{}
	case KindStartVsBot:
		msg = &StartVsBot{}
	case KindMove:
		msg = &Move{}
	case KindGameOver:
		msg = &GameOver{}
	case KindLeaderboard:
		msg = &Leaderboard{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}

// Encode frames a message, injecting its type tag.
func Encode(m Message) ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(m.Kind())
	if err != nil {
		return nil, err
	}
	obj["type"] = tag

	return json.Marshal(obj)
}
