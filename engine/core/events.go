package core

import "sync"

type EventContext struct {
	// F64 carries numbers, C carries ids and paths.
	Data struct {
		I64 [2]int64
		F64 [4]float64
		C   [4]string
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Stops the frame loop after the current frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// A watched model file was parsed again.
	/* Context usage:
	 * handle := data.Data.C[0]
	 */
	EVENT_CODE_MODEL_RELOADED SystemEventCode = 0x02

	// The active camera changed.
	/* Context usage:
	 * previous := data.Data.C[0]
	 * current := data.Data.C[1]
	 */
	EVENT_CODE_CAMERA_SWITCHED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[SystemEventCode][]registeredEvent
}

var eventState = &eventSystemState{
	registered: make(map[SystemEventCode][]registeredEvent),
}

/**
 * Register to listen for when events are sent with the provided code. A listener can only
 * be registered once per code, a second registration returns false.
 * @param code The event code to listen for.
 * @param listener The listener instance, used to unregister. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister a listener from the provided code.
 * @returns true if the listener was registered; otherwise false.
 */
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @param code The event code to fire.
 * @param sender The sender. Can be nil.
 * @param data The event data.
 * @returns true if handled, otherwise false.
 */
func EventFire(code SystemEventCode, sender interface{}, data EventContext) bool {
	eventState.mutex.RLock()
	events := append([]registeredEvent(nil), eventState.registered[code]...)
	eventState.mutex.RUnlock()

	// callbacks run without the lock so they may register or fire events themselves
	for _, e := range events {
		if e.callback(code, sender, e.listener, data) {
			return true
		}
	}
	return false
}
