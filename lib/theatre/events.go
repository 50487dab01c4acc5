package theatre

import "github.com/fosdem/layertunnel/lib/rotation"

type EventListener func(theatre *Theatre, data interface{})

const EventModeChange = "mode-change"

type EventDataModeChange struct {
	Event  string        `json:"event"`
	Mode   rotation.Mode `json:"mode"`
	Manual bool          `json:"manual"`
}

func (t *Theatre) AddEventListener(event string, callback EventListener) {
	t.listenerMutex.Lock()
	defer t.listenerMutex.Unlock()
	t.listener[event] = append(t.listener[event], callback)
}

func (t *Theatre) invoke(event string, data interface{}) {
	t.listenerMutex.Lock()
	listeners := t.listener[event]
	t.listenerMutex.Unlock()

	for _, listener := range listeners {
		go listener(t, data)
	}
}
