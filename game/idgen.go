package game

import (
	"math/rand"
	"sync"
)

const roomIdAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomIdLength = 6

// Idgen mints short join codes and guarantees no two live rooms share
// one. Dispose returns a code to the pool once its room is gone.
type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
}

func NewIdGen() *Idgen {
	return &Idgen{ids: make(map[string]struct{})}
}

func (g *Idgen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	buf := make([]byte, roomIdLength)
	for {
		for i := range buf {
			buf[i] = roomIdAlphabet[rand.Intn(len(roomIdAlphabet))]
		}
		id := string(buf)
		if _, taken := g.ids[id]; !taken {
			g.ids[id] = struct{}{}
			return id
		}
	}
}

func (g *Idgen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.ids, id)
}
