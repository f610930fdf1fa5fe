package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testEventCode SystemEventCode = 0x100

func TestEventRegisterAndFire(t *testing.T) {
	listenerA, listenerB := "a", "b"
	var got []string
	onEvent := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		got = append(got, listenerInst.(string)+":"+data.Data.C[0])
		return false
	}

	assert.True(t, EventRegister(testEventCode, listenerA, onEvent))
	assert.True(t, EventRegister(testEventCode, listenerB, onEvent))
	assert.False(t, EventRegister(testEventCode, listenerA, onEvent), "duplicate listener")
	defer EventUnregister(testEventCode, listenerB)

	data := EventContext{}
	data.Data.C[0] = "x"
	assert.False(t, EventFire(testEventCode, nil, data))
	assert.Equal(t, []string{"a:x", "b:x"}, got)

	assert.True(t, EventUnregister(testEventCode, listenerA))
	assert.False(t, EventUnregister(testEventCode, listenerA))
	got = nil
	EventFire(testEventCode, nil, data)
	assert.Equal(t, []string{"b:x"}, got)
}

func TestEventHandledStopsPropagation(t *testing.T) {
	calls := 0
	handled := func(SystemEventCode, interface{}, interface{}, EventContext) bool { calls++; return true }

	assert.True(t, EventRegister(testEventCode+1, "first", handled))
	assert.True(t, EventRegister(testEventCode+1, "second", handled))
	defer EventUnregister(testEventCode+1, "first")
	defer EventUnregister(testEventCode+1, "second")

	assert.True(t, EventFire(testEventCode+1, nil, EventContext{}))
	assert.Equal(t, 1, calls)
}

func TestEventRegisterRejectsBadInput(t *testing.T) {
	assert.False(t, EventRegister(-1, nil, func(SystemEventCode, interface{}, interface{}, EventContext) bool { return false }))
	assert.False(t, EventRegister(MAX_MESSAGE_CODES, nil, func(SystemEventCode, interface{}, interface{}, EventContext) bool { return false }))
	assert.False(t, EventRegister(testEventCode+2, nil, nil))
	assert.False(t, EventFire(testEventCode+3, nil, EventContext{}))
}
