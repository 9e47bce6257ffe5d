package server

import (
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrBadMessage   = errors.New("bad message")
)

// Frame is the wire form of a game snapshot.
type Frame struct {
	SessionID string       `json:"sessionId" msgpack:"sessionId"`
	Tick      int          `json:"tick" msgpack:"tick"`
	Body      []types.Cell `json:"body" msgpack:"body"`
	Food      types.Cell   `json:"food" msgpack:"food"`
	Score     int          `json:"score" msgpack:"score"`
	HighScore int          `json:"highScore" msgpack:"highScore"`
	State     string       `json:"state" msgpack:"state"`
	Direction string       `json:"direction" msgpack:"direction"`
	Collision string       `json:"collision" msgpack:"collision"`
	Columns   int          `json:"columns" msgpack:"columns"`
	Rows      int          `json:"rows" msgpack:"rows"`
	ElapsedMs int64        `json:"elapsedMs" msgpack:"elapsedMs"`
}

func NewFrame(s game.Snapshot, highScore int) Frame {
	if s.Score > highScore {
		highScore = s.Score
	}
	return Frame{
		SessionID: s.SessionID,
		Tick:      s.Tick,
		Body:      s.Body,
		Food:      s.Food,
		Score:     s.Score,
		HighScore: highScore,
		State:     s.State.String(),
		Direction: s.Direction.String(),
		Collision: s.Collision.String(),
		Columns:   s.Columns,
		Rows:      s.Rows,
		ElapsedMs: s.Elapsed.Milliseconds(),
	}
}

// Message is sent by clients: either a direction or an action.
type Message struct {
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty"`
	Action    string `json:"action,omitempty" msgpack:"action,omitempty"`
}

// Command maps the message onto a game command.
func (m Message) Command() (game.Command, error) {
	if m.Direction != "" {
		dir := types.ParseDirection(m.Direction)
		if !dir.Valid() {
			return game.Command{}, errors.Wrapf(ErrBadMessage, "direction %q", m.Direction)
		}
		return game.Turn(dir), nil
	}
	switch strings.ToLower(strings.TrimSpace(m.Action)) {
	case "restart":
		return game.Restart, nil
	case "quit":
		return game.Quit, nil
	default:
		return game.Command{}, errors.Wrapf(ErrBadMessage, "action %q", m.Action)
	}
}

type Codec int

const (
	JSONCodec Codec = iota
	MsgpackCodec
)

func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return JSONCodec, nil
	case "msgpack":
		return MsgpackCodec, nil
	default:
		return 0, errors.Wrapf(ErrUnknownCodec, "%q", s)
	}
}

func (c Codec) String() string {
	if c == MsgpackCodec {
		return "msgpack"
	}
	return "json"
}

// Encode returns the websocket message type and payload for f.
func (c Codec) Encode(f Frame) (int, []byte, error) {
	if c == MsgpackCodec {
		data, err := msgpack.Marshal(&f)
		return websocket.BinaryMessage, data, errors.Wrap(err, "encode msgpack frame")
	}
	data, err := json.Marshal(f)
	return websocket.TextMessage, data, errors.Wrap(err, "encode json frame")
}

// DecodeMessage reads a client message; binary payloads are msgpack, text
// payloads JSON.
func DecodeMessage(messageType int, data []byte) (Message, error) {
	var m Message
	var err error
	switch messageType {
	case websocket.BinaryMessage:
		err = msgpack.Unmarshal(data, &m)
	case websocket.TextMessage:
		err = json.Unmarshal(data, &m)
	default:
		return m, errors.Wrapf(ErrBadMessage, "message type %d", messageType)
	}
	if err != nil {
		return m, errors.Wrap(ErrBadMessage, err.Error())
	}
	return m, nil
}
