package server

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

func TestMessageCommand(t *testing.T) {
	cases := []struct {
		msg  Message
		want game.Command
	}{
		{Message{Direction: "up"}, game.Turn(types.Up)},
		{Message{Direction: " Left "}, game.Turn(types.Left)},
		{Message{Action: "restart"}, game.Restart},
		{Message{Action: "QUIT"}, game.Quit},
	}
	for _, tc := range cases {
		got, err := tc.msg.Command()
		if err != nil || got != tc.want {
			t.Errorf("%+v: got %+v, %v", tc.msg, got, err)
		}
	}

	for _, bad := range []Message{{}, {Direction: "north"}, {Action: "pause"}} {
		if _, err := bad.Command(); !errors.Is(err, ErrBadMessage) {
			t.Errorf("%+v: expected ErrBadMessage, got %v", bad, err)
		}
	}
}

func TestDecodeMessage(t *testing.T) {
	m, err := DecodeMessage(websocket.TextMessage, []byte(`{"direction":"down"}`))
	if err != nil || m.Direction != "down" {
		t.Errorf("text: %+v, %v", m, err)
	}

	data, _ := msgpack.Marshal(&Message{Action: "restart"})
	m, err = DecodeMessage(websocket.BinaryMessage, data)
	if err != nil || m.Action != "restart" {
		t.Errorf("binary: %+v, %v", m, err)
	}

	if _, err := DecodeMessage(websocket.TextMessage, []byte("{")); !errors.Is(err, ErrBadMessage) {
		t.Errorf("expected ErrBadMessage, got %v", err)
	}
}

func TestParseCodec(t *testing.T) {
	for in, want := range map[string]Codec{"": JSONCodec, "json": JSONCodec, "MsgPack": MsgpackCodec} {
		if got, err := ParseCodec(in); err != nil || got != want {
			t.Errorf("ParseCodec(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCodec("xml"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestNewFrameKeepsBestScore(t *testing.T) {
	s := game.Snapshot{Body: []types.Cell{{X: 1, Y: 1}}, Score: 40, State: types.GameOver, Direction: types.Down, Collision: types.SelfCollision}
	f := NewFrame(s, 30)
	if f.HighScore != 40 {
		t.Errorf("HighScore = %d, want 40", f.HighScore)
	}
	if f.State != "game_over" || f.Direction != "down" || f.Collision != "self" {
		t.Errorf("frame enums = %s/%s/%s", f.State, f.Direction, f.Collision)
	}
}
