package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"rogue-server/internal/domain"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidReplay = errors.New("invalid replay file")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidReplay, header.Magic[:])
	}
	if header.Version != Version2 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalidReplay, header.Version, Version2)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("%w: negative action count", ErrInvalidReplay)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Распаковываем действия
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	for i := range session.Actions {
		var ah ActionHeader
		if err := binary.Read(br, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d header: %w", i, err)
		}

		act := domain.ReplayAction{
			Turn:   int(ah.Turn),
			Action: domain.ActionType(ah.ActionType),
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(br, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}
