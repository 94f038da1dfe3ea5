package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"rogue-server/internal/domain"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		Seed:      12345,
		Timestamp: 1700000000,
		Actions: []domain.ReplayAction{
			{Turn: 0, Action: domain.ActionMove, Payload: json.RawMessage(`{"dx":1,"dy":0}`)},
			{Turn: 1, Action: domain.ActionWait},
			{Turn: 2, Action: domain.ActionSelect, Payload: json.RawMessage(`{"itemId":"4294967297"}`)},
		},
	}
}

func TestReplayFile(t *testing.T) {
	t.Run("Write then read", func(t *testing.T) {
		var buf bytes.Buffer
		in := sampleSession()
		if err := writeBinary(&buf, in); err != nil {
			t.Fatalf("write: %v", err)
		}

		if got := string(buf.Bytes()[:4]); got != MagicHeader {
			t.Errorf("magic = %q", got)
		}

		out, err := readBinary(&buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if out.Seed != in.Seed || out.Timestamp != in.Timestamp {
			t.Errorf("header mismatch: %+v", out)
		}
		if len(out.Actions) != len(in.Actions) {
			t.Fatalf("actions = %d, want %d", len(out.Actions), len(in.Actions))
		}
		for i := range in.Actions {
			a, b := in.Actions[i], out.Actions[i]
			if a.Turn != b.Turn || a.Action != b.Action || !bytes.Equal(a.Payload, b.Payload) {
				t.Errorf("action %d: got %+v, want %+v", i, b, a)
			}
		}
	})

	t.Run("Bad magic", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeBinary(&buf, sampleSession()); err != nil {
			t.Fatal(err)
		}
		raw := buf.Bytes()
		copy(raw, "XXXX")

		_, err := readBinary(bytes.NewReader(raw))
		if !errors.Is(err, ErrInvalidReplay) {
			t.Errorf("err = %v, want ErrInvalidReplay", err)
		}
	})

	t.Run("Truncated body", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeBinary(&buf, sampleSession()); err != nil {
			t.Fatal(err)
		}
		raw := buf.Bytes()
		// Заголовок цел, сжатый поток обрезан.
		if _, err := readBinary(bytes.NewReader(raw[:len(raw)-8])); err == nil {
			t.Error("expected an error for truncated file")
		}
	})

	t.Run("Save and Load", func(t *testing.T) {
		svc, err := NewReplayService(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		path, err := svc.Save(sampleSession())
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := svc.Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got.Actions) != 3 || got.Actions[0].Action != domain.ActionMove {
			t.Errorf("unexpected session: %+v", got)
		}
	})
}
