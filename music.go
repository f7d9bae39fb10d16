package evergreen

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// musicSampleRate is the audio context rate used when Run creates one.
const musicSampleRate = 48000

// Music is a looping background track. Browsers and some platforms refuse
// to start audio before the user has interacted, so the track only starts on
// the first call to Start.
type Music struct {
	player *audio.Player
	once   sync.Once
}

// LoadMusic decodes an .mp3 or .ogg file into a looping player.
func LoadMusic(ctx *audio.Context, path string) (*Music, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music %s: %w", path, err)
	}
	return NewMusic(ctx, filepath.Ext(path), data)
}

// NewMusic decodes in-memory audio data. ext selects the decoder and must
// be ".mp3" or ".ogg".
func NewMusic(ctx *audio.Context, ext string, data []byte) (*Music, error) {
	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}

	switch strings.ToLower(ext) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg: %w", err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported music format %q (supported: .mp3, .ogg)", ext)
	}

	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("create music player: %w", err)
	}
	return &Music{player: player}, nil
}

// Start begins playback. Only the first call has an effect.
func (m *Music) Start() {
	m.once.Do(func() {
		m.player.Play()
	})
}

// Playing reports whether the track is currently playing.
func (m *Music) Playing() bool {
	return m.player.IsPlaying()
}

// SetVolume sets the playback volume in [0, 1].
func (m *Music) SetVolume(v float64) {
	m.player.SetVolume(clamp01(v))
}

// Close stops playback and releases the player.
func (m *Music) Close() error {
	return m.player.Close()
}

// StartOnInteract starts m the first time the scene sees user input.
func (s *Scene) StartOnInteract(m *Music) CallbackHandle {
	return s.OnInteract(func(InteractContext) { m.Start() })
}
