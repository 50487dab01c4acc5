package stats

import (
	"sync"

	"github.com/fosdem/layertunnel/lib/theatre"
	"github.com/fosdem/layertunnel/lib/utils"
)

// Data is what the API reports. Scene is the theatre snapshot taken at the
// last update.
type Data struct {
	TextureUpload uint64           `json:"texture_upload"`
	Uptime        float64          `json:"uptime"`
	FPS           uint64           `json:"fps"`
	WsClients     int              `json:"ws_clients"`
	Scene         theatre.Snapshot `json:"scene"`
}

// Stats is updated by the render loop once per frame and read by the API
type Stats struct {
	mu   sync.Mutex
	data Data

	clock        utils.Clock
	frameCounter uint64
	frameTimer   float64
	start        float64
}

func New(clock utils.Clock) *Stats {
	s := &Stats{clock: clock}
	s.start = clock.Seconds()
	s.frameTimer = s.start
	return s
}

func (s *Stats) Update(scene theatre.Snapshot, textureUpload uint64) {
	now := s.clock.Seconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameCounter++
	if now-s.frameTimer >= 1 {
		s.data.FPS = uint64(float64(s.frameCounter) / (now - s.frameTimer))
		s.frameCounter = 0
		s.frameTimer = now
	}

	s.data.Uptime = now - s.start
	s.data.TextureUpload = textureUpload
	s.data.Scene = scene
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.WsClients = n
}

func (s *Stats) Get() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}
