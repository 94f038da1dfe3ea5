package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rogue-server/internal/domain"

	"github.com/klauspost/compress/zstd"
)

const (
	MagicHeader string = `CDRP` // 4 байта
	Version2    uint32 = 2      // тело сжато zstd
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// Заголовок пишется без сжатия, чтобы файл можно было опознать без распаковки.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	ActionCount int32   // 4 байта
}

// ActionHeader - заголовок каждой записи действия внутри zstd-потока.
type ActionHeader struct {
	Turn       int32  // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись партии в новый файл и возвращает его путь.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d.cdrp", session.Seed, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := writeBinary(f, session); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	// 1. Глобальный заголовок (без сжатия)
	header := ReplayFileHeader{
		Version:     Version2,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		ActionCount: int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Действия - в zstd-поток
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriter(enc)

	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			enc.Close()
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}

		// Пишем заголовок действия одной командой
		if err := binary.Write(bw, binary.LittleEndian, &actHeader); err != nil {
			enc.Close()
			return err
		}
		if payloadLen > 0 {
			if _, err := bw.Write(act.Payload); err != nil {
				enc.Close()
				return err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}
