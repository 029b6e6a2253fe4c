package registry

import (
	"fmt"

	"github.com/tunepipe/tunepipe/model"
)

// Registry is the read-only tune table. It is built once at startup
// and shared by every request; nothing mutates it afterwards.
type Registry struct {
	tunes []model.Tune
}

func New(tunes []model.Tune) Registry {
	copied := make([]model.Tune, len(tunes))
	copy(copied, tunes)
	return Registry{tunes: copied}
}

// Default mirrors the shipped tune set: ten seed tunes with matching
// original recordings.
func Default() Registry {
	tunes := make([]model.Tune, 0, 10)
	for i := 1; i <= 10; i++ {
		tunes = append(tunes, model.Tune{
			ID:        i,
			Title:     fmt.Sprintf("Tune %v", i),
			AbcFile:   fmt.Sprintf("tune_%v.abc", i),
			OrigAudio: fmt.Sprintf("tune_%v.wav", i),
		})
	}
	return New(tunes)
}

func (r Registry) Find(id int) (model.Tune, bool) {
	for _, t := range r.tunes {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tune{}, false
}

func (r Registry) All() []model.Tune {
	copied := make([]model.Tune, len(r.tunes))
	copy(copied, r.tunes)
	return copied
}
